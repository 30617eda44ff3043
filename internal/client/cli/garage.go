package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophgarage/internal/client/reconcile"
	"github.com/dmitrijs2005/gophgarage/internal/models"
)

// settle waits a bounded time for an add to be confirmed and tells the user
// where the record ended up. A rolled back add is returned as an error.
func settle[T any](ctx context.Context, a *App, op *reconcile.Op[T]) (T, error) {
	wctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	v, err := op.Wait(wctx)
	if errors.Is(err, context.DeadlineExceeded) && op.Status() == reconcile.Pending {
		printlnFn("Saved locally, still syncing")
		return op.Value(), nil
	}

	switch op.Status() {
	case reconcile.Committed:
		printlnFn("Saved")
	case reconcile.RolledBack:
		return v, fmt.Errorf("not saved: %w", err)
	case reconcile.LocalOnly:
		if err != nil {
			a.logger.Warn(ctx, "saved locally after remote failure", "error", err)
		}
		printlnFn("Saved locally, it will be synced when the server is reachable")
	}
	return v, nil
}

// pick resolves ref as an identifier or as a 1-based position in items.
// An empty ref is asked for.
func pick[T any](a *App, ref, what string, items []T, id func(T) models.ID) (T, error) {
	var zero T
	if ref == "" {
		var err error
		if ref, err = getSimpleText(a.reader, fmt.Sprintf("Which %s (number or id)?", what), a.out); err != nil {
			return zero, err
		}
	}
	for _, it := range items {
		if id(it) == models.ID(ref) {
			return it, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(items) {
		return items[n-1], nil
	}
	return zero, fmt.Errorf("%s %q not found", what, ref)
}

func (a *App) pickVehicle(ref string) (models.Vehicle, error) {
	return pick(a, ref, "vehicle", a.garage.Vehicles(), func(v models.Vehicle) models.ID { return v.ID })
}

func syncState(id models.ID) string {
	if id.IsTemporary() {
		return "local"
	}
	return "synced"
}

// Refresh reloads every collection from the server.
func (a *App) Refresh(ctx context.Context) error {
	if !a.garage.Online() {
		return errors.New("server is not reachable, showing cached data")
	}
	a.garage.RefreshAll(ctx)
	printlnFn(fmt.Sprintf("%d vehicles, %d maintenances, %d reminders",
		len(a.garage.Vehicles()), len(a.garage.Maintenances("")), len(a.garage.Reminders(""))))
	return nil
}
