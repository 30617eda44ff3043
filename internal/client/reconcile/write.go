package reconcile

import (
	"context"
	"fmt"
	"reflect"

	"github.com/dmitrijs2005/gophgarage/internal/models"
)

// addLocked stores v under a temporary ID and, when online, creates it
// remotely in the background. Records pointing at a vehicle the server has
// not seen yet stay local; they are sent once the vehicle is confirmed.
func addLocked[T any](ctx context.Context, r *Reconciler, s *entitySet[T], v T) *Op[T] {
	s.setID(&v, models.NewTemporaryID())
	s.setOwner(&v, r.scope.userID)
	s.put(v)
	persistLocked(ctx, r, s)

	op := newOp(v)
	if !r.online || s.vehicleOf(v).IsTemporary() {
		op.settle(LocalOnly, v, nil)
		return op
	}

	sc := r.scope
	r.inflight[s.id(v)] = struct{}{}
	r.background(func(bg context.Context) {
		final, rolledBack, err := createRemote(bg, r, s, sc, v, s.rollback)
		switch {
		case err == nil:
			op.settle(Committed, final, nil)
		case rolledBack:
			op.settle(RolledBack, v, err)
		default:
			op.settle(LocalOnly, v, err)
		}
	})
	return op
}

// createRemote sends sent to the server and folds the answer back into local
// state. The caller must have marked sent's ID in flight.
func createRemote[T any](ctx context.Context, r *Reconciler, s *entitySet[T], sc scope, sent T, rollback bool) (T, bool, error) {
	saved, err := s.create(ctx, sent)

	r.mu.Lock()
	defer r.mu.Unlock()

	id := s.id(sent)
	delete(r.inflight, id)

	if err != nil {
		delete(r.discarded, id)
		err = fmt.Errorf("create %s: %w", s.name, err)
		r.logger.Warn(ctx, "remote create failed", "collection", s.name, "id", id, "error", err)
		if !rollback {
			return sent, false, err
		}
		if r.inScope(sc) && s.delete(id) {
			if s.afterDelete != nil {
				s.afterDelete(ctx, id)
			}
			persistLocked(ctx, r, s)
		}
		return sent, true, err
	}

	return adoptLocked(ctx, r, s, sc, sent, saved), false, nil
}

// adoptLocked replaces the temporary ID of sent with the canonical one the
// server assigned in saved, keeping local field values.
func adoptLocked[T any](ctx context.Context, r *Reconciler, s *entitySet[T], sc scope, sent, saved T) T {
	tempID, canonical := s.id(sent), s.id(saved)
	if canonical == "" {
		canonical = tempID
	}

	if !r.inScope(sc) {
		r.logger.Info(ctx, "remote create finished after session change", "collection", s.name, "id", canonical)
		return saved
	}

	if _, gone := r.discarded[tempID]; gone {
		delete(r.discarded, tempID)
		if canonical != tempID {
			removeRemote(r, s, canonical)
		}
		return saved
	}

	cur, ok := s.get(tempID)
	if !ok {
		// A refresh replaced the collection before the server answered.
		if vid := s.vehicleOf(saved); vid != "" {
			if _, known := r.vehicles.get(vid); !known {
				r.logger.Info(ctx, "created record lost its vehicle", "collection", s.name, "id", canonical, "vehicle", vid)
				removeRemote(r, s, canonical)
				return saved
			}
		}
		s.put(saved)
		if canonical != tempID && s.afterCanonical != nil {
			s.afterCanonical(ctx, tempID, canonical)
		}
		persistLocked(ctx, r, s)
		return saved
	}
	if canonical == tempID {
		return cur
	}

	s.rename(tempID, canonical)
	if s.afterCanonical != nil {
		s.afterCanonical(ctx, tempID, canonical)
	}
	persistLocked(ctx, r, s)
	cur, _ = s.get(canonical)

	s.setID(&sent, canonical)
	if !reflect.DeepEqual(cur, sent) {
		// Edited while the create was in flight.
		edited := cur
		r.background(func(bg context.Context) {
			if _, err := s.update(bg, edited); err != nil {
				r.logger.Warn(bg, "remote update failed", "collection", s.name, "id", canonical, "error", err)
			}
		})
	}
	return cur
}

// updateLocked overwrites the stored record with v's ID. It reports false
// when no such record exists. The owner is never changed by an update.
func updateLocked[T any](ctx context.Context, r *Reconciler, s *entitySet[T], v T) bool {
	cur, ok := s.get(s.id(v))
	if !ok {
		return false
	}
	s.setOwner(&v, s.owner(cur))
	s.put(v)
	persistLocked(ctx, r, s)

	if r.online && !s.id(v).IsTemporary() {
		r.background(func(bg context.Context) {
			if _, err := s.update(bg, v); err != nil {
				r.logger.Warn(bg, "remote update failed", "collection", s.name, "id", s.id(v), "error", err)
			}
		})
	}
	return true
}

// deleteLocked removes id locally and, for records the server knows, remotely.
func deleteLocked[T any](ctx context.Context, r *Reconciler, s *entitySet[T], id models.ID) bool {
	if !s.delete(id) {
		return false
	}
	if s.afterDelete != nil {
		s.afterDelete(ctx, id)
	}
	persistLocked(ctx, r, s)

	if _, pending := r.inflight[id]; pending {
		r.discarded[id] = struct{}{}
		return true
	}
	if r.online && !id.IsTemporary() {
		removeRemote(r, s, id)
	}
	return true
}

// removeRemote deletes id on the server in the background.
func removeRemote[T any](r *Reconciler, s *entitySet[T], id models.ID) {
	r.background(func(bg context.Context) {
		if err := s.remove(bg, id); err != nil {
			r.logger.Warn(bg, "remote delete failed", "collection", s.name, "id", id, "error", err)
		}
	})
}

// pushWhereLocked starts background creation of never-synced records matching
// pred whose vehicle is known to the server.
func pushWhereLocked[T any](r *Reconciler, s *entitySet[T], pred func(T) bool) {
	sc := r.scope
	for _, v := range pendingLocked(r, s, pred) {
		rec := v
		r.background(func(bg context.Context) {
			_, _, _ = createRemote(bg, r, s, sc, rec, false)
		})
	}
}

// pendingLocked marks and returns never-synced records ready to be created.
func pendingLocked[T any](r *Reconciler, s *entitySet[T], pred func(T) bool) []T {
	var out []T
	for _, v := range s.items {
		id := s.id(v)
		if !id.IsTemporary() || s.vehicleOf(v).IsTemporary() {
			continue
		}
		if _, busy := r.inflight[id]; busy {
			continue
		}
		if pred != nil && !pred(v) {
			continue
		}
		r.inflight[id] = struct{}{}
		out = append(out, v)
	}
	return out
}
