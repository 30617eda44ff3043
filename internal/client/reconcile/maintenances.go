package reconcile

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophgarage/internal/models"
)

// AddMaintenance logs m for one of the user's vehicles and keeps the
// vehicle's recurring reminder in step when m is an oil change.
//
// A remote failure does not remove m: the op ends LocalOnly with the error,
// and m is sent again after the next reconnection.
func (r *Reconciler) AddMaintenance(ctx context.Context, m models.Maintenance) (*Op[models.Maintenance], error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope.userID == "" {
		return nil, ErrNoActiveSession
	}
	if err := r.checkVehicleLocked(m.VehicleID); err != nil {
		return nil, err
	}

	op := addLocked(ctx, r, r.maintenances, m)
	r.deriveReminderLocked(ctx, op.Value())
	return op, nil
}

// UpdateMaintenance overwrites the maintenance with m.ID and re-derives the
// recurring reminder. Unknown IDs are ignored.
func (r *Reconciler) UpdateMaintenance(ctx context.Context, m models.Maintenance) error {
	if err := m.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope.userID == "" {
		return ErrNoActiveSession
	}
	if _, ok := r.maintenances.get(m.ID); !ok {
		return nil
	}
	if err := r.checkVehicleLocked(m.VehicleID); err != nil {
		return err
	}

	updateLocked(ctx, r, r.maintenances, m)
	r.deriveReminderLocked(ctx, m)
	return nil
}

// DeleteMaintenance removes the maintenance. Derived reminders stay.
func (r *Reconciler) DeleteMaintenance(ctx context.Context, id models.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope.userID == "" {
		return ErrNoActiveSession
	}
	deleteLocked(ctx, r, r.maintenances, id)
	return nil
}

// checkVehicleLocked rejects references to vehicles the user does not have.
func (r *Reconciler) checkVehicleLocked(id models.ID) error {
	if _, ok := r.vehicles.get(id); !ok {
		return fmt.Errorf("%w: vehicle %s is not registered for this user", ErrValidationFailed, id)
	}
	return nil
}
