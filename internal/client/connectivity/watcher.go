// Package connectivity tracks whether the remote store is reachable and
// tells the reconciliation layer about every change.
package connectivity

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/logging"
)

// PingTimeout bounds a single health probe.
const PingTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Target receives connectivity changes. *reconcile.Reconciler satisfies it.
type Target interface {
	SetOnline(ctx context.Context, online bool)
	Online() bool
}

type Watcher struct {
	pinger   Pinger
	target   Target
	interval time.Duration
	logger   logging.Logger
}

func NewWatcher(p Pinger, t Target, interval time.Duration, logger logging.Logger) *Watcher {
	return &Watcher{pinger: p, target: t, interval: interval, logger: logger}
}

// Check probes the server once and forwards the result. It reports the
// observed state.
func (w *Watcher) Check(ctx context.Context) bool {
	pctx, cancel := context.WithTimeout(ctx, PingTimeout)
	err := w.pinger.Ping(pctx)
	cancel()

	online := err == nil
	if online != w.target.Online() {
		if online {
			w.logger.Info(ctx, "switched to online mode")
		} else {
			w.logger.Warn(ctx, "switched to offline mode", "error", err)
		}
	}
	w.target.SetOnline(ctx, online)
	return online
}

// Run checks immediately and then every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
