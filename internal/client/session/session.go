// Package session holds the authenticated user of the running client.
//
// A Context is created once per process and injected wherever the active
// user or the bearer token is needed. Login and logout are explicit
// SetSession and ClearSession calls, and interested components subscribe
// with OnChange instead of polling.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophgarage/internal/models"
)

// Session is the authenticated user and its bearer token.
type Session struct {
	UserID   models.ID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Token    string    `json:"token"`
}

// Listener observes session transitions. prev or next is nil when there was
// or will be no session.
type Listener func(ctx context.Context, prev, next *Session)

// Context is the process-wide session holder. The zero value is usable.
type Context struct {
	mu        sync.RWMutex
	current   *Session
	listeners []Listener
}

func New() *Context {
	return &Context{}
}

// Current returns a copy of the active session.
func (c *Context) Current() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return Session{}, false
	}
	return *c.current, true
}

// UserID returns the active user, or "" without a session.
func (c *Context) UserID() models.ID {
	s, _ := c.Current()
	return s.UserID
}

// Token returns the bearer token of the active session, or "".
func (c *Context) Token() string {
	s, _ := c.Current()
	return s.Token
}

// OnChange registers l. Listeners run synchronously, in registration order,
// after the new session is visible through Current.
func (c *Context) OnChange(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// SetSession makes s the active session. Replacing a session of a different
// user first notifies listeners of the logout.
func (c *Context) SetSession(ctx context.Context, s Session) {
	c.mu.Lock()
	prev := c.current
	if prev != nil && prev.UserID != s.UserID {
		c.current = nil
		c.mu.Unlock()
		c.notify(ctx, prev, nil)
		c.mu.Lock()
		prev = nil
	}
	next := s
	c.current = &next
	c.mu.Unlock()

	c.notify(ctx, prev, &next)
}

// ClearSession drops the active session. It is a no-op without one.
func (c *Context) ClearSession(ctx context.Context) {
	c.mu.Lock()
	prev := c.current
	c.current = nil
	c.mu.Unlock()

	if prev != nil {
		c.notify(ctx, prev, nil)
	}
}

func (c *Context) notify(ctx context.Context, prev, next *Session) {
	c.mu.RLock()
	ls := make([]Listener, len(c.listeners))
	copy(ls, c.listeners)
	c.mu.RUnlock()

	for _, l := range ls {
		var p, n *Session
		if prev != nil {
			pc := *prev
			p = &pc
		}
		if next != nil {
			nc := *next
			n = &nc
		}
		l(ctx, p, n)
	}
}
