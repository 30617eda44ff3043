package reconcile

import (
	"context"

	"github.com/dmitrijs2005/gophgarage/internal/models"
)

// AddReminder schedules a reminder for one of the user's vehicles.
// Like maintenances, reminders are kept locally when the server rejects them.
func (r *Reconciler) AddReminder(ctx context.Context, rem models.Reminder) (*Op[models.Reminder], error) {
	if err := rem.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope.userID == "" {
		return nil, ErrNoActiveSession
	}
	if err := r.checkVehicleLocked(rem.VehicleID); err != nil {
		return nil, err
	}
	return addLocked(ctx, r, r.reminders, rem), nil
}

// UpdateReminder overwrites the reminder with rem.ID. Unknown IDs are ignored.
func (r *Reconciler) UpdateReminder(ctx context.Context, rem models.Reminder) error {
	if err := rem.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope.userID == "" {
		return ErrNoActiveSession
	}
	updateLocked(ctx, r, r.reminders, rem)
	return nil
}

func (r *Reconciler) DeleteReminder(ctx context.Context, id models.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope.userID == "" {
		return ErrNoActiveSession
	}
	deleteLocked(ctx, r, r.reminders, id)
	return nil
}

// MarkCompleted deactivates the reminder. For the recurring category it also
// schedules the successor and returns its op; otherwise the op is nil.
// Unknown or already completed reminders are ignored.
func (r *Reconciler) MarkCompleted(ctx context.Context, id models.ID) (*Op[models.Reminder], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope.userID == "" {
		return nil, ErrNoActiveSession
	}

	rem, ok := r.reminders.get(id)
	if !ok || !rem.IsActive {
		return nil, nil
	}
	rem.IsActive = false
	updateLocked(ctx, r, r.reminders, rem)

	if !models.IsRecurringCategory(rem.MaintenanceType) {
		return nil, nil
	}
	return addLocked(ctx, r, r.reminders, rem.Successor()), nil
}
