package reconcile

import (
	"context"

	"github.com/dmitrijs2005/gophgarage/internal/client/repositories/cache"
)

// Refresh replaces collection c with the server's copy for the active user.
// It does nothing offline or without a session. Failures are logged only.
func (r *Reconciler) Refresh(ctx context.Context, c cache.Collection) {
	switch c {
	case cache.Vehicles:
		refreshSet(ctx, r, r.vehicles)
	case cache.Maintenances:
		refreshSet(ctx, r, r.maintenances)
	case cache.Reminders:
		refreshSet(ctx, r, r.reminders)
	}
}

// RefreshAll refreshes vehicles, maintenances and reminders in that order.
func (r *Reconciler) RefreshAll(ctx context.Context) {
	for _, c := range cache.AllCollections {
		r.Refresh(ctx, c)
	}
}

func refreshSet[T any](ctx context.Context, r *Reconciler, s *entitySet[T]) {
	r.mu.Lock()
	sc, online := r.scope, r.online
	r.mu.Unlock()
	if sc.userID == "" || !online {
		return
	}

	incoming, err := s.list(ctx)
	if err != nil {
		r.logger.Warn(ctx, "refresh failed", "collection", s.name, "error", err)
		return
	}
	mine := make([]T, 0, len(incoming))
	for _, v := range incoming {
		if s.owner(v) == sc.userID {
			mine = append(mine, v)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inScope(sc) {
		return
	}

	suspect := len(mine) == 0 && len(s.items) > 0
	s.emptyRemote.Publish(suspect)
	if suspect {
		r.logger.Warn(ctx, "empty remote answer ignored", "collection", s.name, "local", len(s.items))
		return
	}
	s.reset(mine)
	persistLocked(ctx, r, s)
	r.logger.Debug(ctx, "collection refreshed", "collection", s.name, "count", len(mine))
}

// PushLocal creates on the server every record that only exists locally,
// vehicles first so that dependents can reference canonical vehicle IDs.
// It returns once all attempts have finished; failures are logged.
func (r *Reconciler) PushLocal(ctx context.Context) {
	pushSet(ctx, r, r.vehicles)
	pushSet(ctx, r, r.maintenances)
	pushSet(ctx, r, r.reminders)
}

func pushSet[T any](ctx context.Context, r *Reconciler, s *entitySet[T]) {
	r.mu.Lock()
	if r.scope.userID == "" || !r.online {
		r.mu.Unlock()
		return
	}
	sc := r.scope
	pending := pendingLocked(r, s, nil)
	r.mu.Unlock()

	for _, v := range pending {
		_, _, _ = createRemote(ctx, r, s, sc, v, false)
	}
	if len(pending) > 0 {
		r.logger.Info(ctx, "local records pushed", "collection", s.name, "count", len(pending))
	}
}
