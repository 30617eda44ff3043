package reconcile

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/gophgarage/internal/models"
)

// AddVehicle registers v for the active user. A remote rejection removes the
// vehicle again and reports RolledBack with the error.
func (r *Reconciler) AddVehicle(ctx context.Context, v models.Vehicle) (*Op[models.Vehicle], error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope.userID == "" {
		return nil, ErrNoActiveSession
	}
	return addLocked(ctx, r, r.vehicles, v), nil
}

// UpdateVehicle overwrites the vehicle with v.ID. Unknown IDs are ignored.
func (r *Reconciler) UpdateVehicle(ctx context.Context, v models.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope.userID == "" {
		return ErrNoActiveSession
	}
	updateLocked(ctx, r, r.vehicles, v)
	return nil
}

// DeleteVehicle removes the vehicle with its maintenances and reminders.
// Unknown IDs are ignored.
func (r *Reconciler) DeleteVehicle(ctx context.Context, id models.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope.userID == "" {
		return ErrNoActiveSession
	}
	deleteLocked(ctx, r, r.vehicles, id)
	return nil
}

// cascadeVehicleLocked drops local records of a removed vehicle. The server
// cascades on its own; dependents still being created there are deleted once
// their canonical ID arrives.
func (r *Reconciler) cascadeVehicleLocked(ctx context.Context, id models.ID) {
	ms := r.maintenances.deleteWhere(func(m models.Maintenance) bool { return m.VehicleID == id })
	rs := r.reminders.deleteWhere(func(m models.Reminder) bool { return m.VehicleID == id })
	for _, dep := range slices.Concat(ms, rs) {
		if _, pending := r.inflight[dep]; pending {
			r.discarded[dep] = struct{}{}
		}
	}
	r.persistDependentsLocked(ctx, len(ms) > 0, len(rs) > 0)
}

// vehicleConfirmedLocked repoints dependents of a vehicle that got its
// canonical ID and sends those that were waiting for it.
func (r *Reconciler) vehicleConfirmedLocked(ctx context.Context, from, to models.ID) {
	m := r.maintenances.rewriteVehicle(from, to, func(m *models.Maintenance, id models.ID) { m.VehicleID = id })
	rem := r.reminders.rewriteVehicle(from, to, func(m *models.Reminder, id models.ID) { m.VehicleID = id })
	r.persistDependentsLocked(ctx, m, rem)

	if !r.online {
		return
	}
	pushWhereLocked(r, r.maintenances, func(m models.Maintenance) bool { return m.VehicleID == to })
	pushWhereLocked(r, r.reminders, func(m models.Reminder) bool { return m.VehicleID == to })
}
