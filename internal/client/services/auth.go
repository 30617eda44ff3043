// Package services contains application services for the GophGarage client.
// This file defines the authentication service: online and offline login,
// registration, session restore on startup and logout.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophgarage/internal/client/client"
	"github.com/dmitrijs2005/gophgarage/internal/client/repositories/cache"
	"github.com/dmitrijs2005/gophgarage/internal/client/session"
	"github.com/dmitrijs2005/gophgarage/internal/logging"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	currentUserKey   = "current_user"
	accountKeyPrefix = "account_"
)

// ErrNoOfflineAccount is returned by an offline login for a user that never
// logged in online on this device.
var ErrNoOfflineAccount = errors.New("no offline data for this user, connect to log in")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create the account on the server and start its session.
//   - Login: authenticate online, falling back to the offline verifier when
//     the server cannot be reached.
//   - Restore: re-establish the session saved by the last login.
//   - Logout: end the session; cached collections stay on disk.
//   - Ping: check server liveness.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (session.Session, error)
	Login(ctx context.Context, username, password string) (session.Session, error)
	Restore(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

// account is what offline login checks a password against.
type account struct {
	Session      session.Session `json:"session"`
	PasswordHash []byte          `json:"passwordHash"`
}

type authService struct {
	client client.Client
	store  cache.Repository
	sess   *session.Context
	logger logging.Logger
}

// NewAuthService constructs an AuthService bound to the API client, the
// local cache and the session context it drives.
func NewAuthService(c client.Client, store cache.Repository, sess *session.Context, logger logging.Logger) AuthService {
	return &authService{client: c, store: store, sess: sess, logger: logger}
}

func accountKey(username string) string {
	return accountKeyPrefix + strings.ToLower(username)
}

func (a *authService) Register(ctx context.Context, username, email, password string) (session.Session, error) {
	resp, err := a.client.Register(ctx, models.Credentials{Username: username, Email: email, Password: password})
	if err != nil {
		return session.Session{}, fmt.Errorf("register error: %w", err)
	}
	return a.start(ctx, resp, password)
}

// Login authenticates against the server. When the server is unreachable
// the password is checked against the hash saved by the last online login.
func (a *authService) Login(ctx context.Context, username, password string) (session.Session, error) {
	resp, err := a.client.Login(ctx, models.Credentials{Username: username, Password: password})
	if err == nil {
		return a.start(ctx, resp, password)
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return session.Session{}, fmt.Errorf("login error: %w", err)
	}

	a.logger.Warn(ctx, "server unreachable, trying offline login", "username", username, "error", err)
	return a.offlineLogin(ctx, username, password)
}

func (a *authService) offlineLogin(ctx context.Context, username, password string) (session.Session, error) {
	acc, found, err := cache.LoadValue[account](ctx, a.store, accountKey(username))
	if err != nil {
		return session.Session{}, fmt.Errorf("offline data error: %w", err)
	}
	if !found {
		return session.Session{}, ErrNoOfflineAccount
	}
	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)); err != nil {
		return session.Session{}, client.ErrUnauthorized
	}

	if err := cache.SaveValue(ctx, a.store, currentUserKey, acc.Session); err != nil {
		return session.Session{}, fmt.Errorf("offline data saving error: %w", err)
	}
	a.sess.SetSession(ctx, acc.Session)
	a.logger.Info(ctx, "logged in offline", "user", acc.Session.UserID)
	return acc.Session, nil
}

// start saves the offline verifier and the current user, then activates
// the session.
func (a *authService) start(ctx context.Context, resp *models.AuthResponse, password string) (session.Session, error) {
	s := session.Session{UserID: resp.ID, Username: resp.Username, Email: resp.Email, Token: resp.Token}
	if s.UserID == "" {
		return session.Session{}, fmt.Errorf("auth response without user id: %w", client.ErrBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return session.Session{}, fmt.Errorf("hash password: %w", err)
	}
	if err := cache.SaveValue(ctx, a.store, accountKey(s.Username), account{Session: s, PasswordHash: hash}); err != nil {
		return session.Session{}, fmt.Errorf("offline data saving error: %w", err)
	}
	if err := cache.SaveValue(ctx, a.store, currentUserKey, s); err != nil {
		return session.Session{}, fmt.Errorf("offline data saving error: %w", err)
	}

	a.sess.SetSession(ctx, s)
	a.logger.Info(ctx, "logged in", "user", s.UserID)
	return s, nil
}

// Restore activates the session saved under current_user, if any.
func (a *authService) Restore(ctx context.Context) (bool, error) {
	s, found, err := cache.LoadValue[session.Session](ctx, a.store, currentUserKey)
	if err != nil || !found {
		return false, err
	}
	a.sess.SetSession(ctx, s)
	return true, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Delete(ctx, currentUserKey); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	a.sess.ClearSession(ctx)
	return nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
