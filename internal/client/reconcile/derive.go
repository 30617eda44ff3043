package reconcile

import (
	"context"

	"github.com/dmitrijs2005/gophgarage/internal/models"
)

// DeriveReminder applies the recurring-reminder rule for m on its own.
// Repeating it with the same m leaves exactly one active reminder.
func (r *Reconciler) DeriveReminder(ctx context.Context, m models.Maintenance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scope.userID == "" {
		return ErrNoActiveSession
	}
	r.deriveReminderLocked(ctx, m)
	return nil
}

// deriveReminderLocked moves the active recurring reminder of m's vehicle to
// 6 months and 5000 units after m, creating it if there is none.
func (r *Reconciler) deriveReminderLocked(ctx context.Context, m models.Maintenance) {
	if !m.IsRecurring() {
		return
	}
	due, mileage := models.NextAfterMaintenance(m)

	for _, rem := range r.reminders.items {
		if rem.VehicleID != m.VehicleID || !rem.IsActive || !models.IsRecurringCategory(rem.MaintenanceType) {
			continue
		}
		rem.DueDate, rem.Mileage = due, mileage
		updateLocked(ctx, r, r.reminders, rem)
		return
	}

	op := addLocked(ctx, r, r.reminders, models.Reminder{
		VehicleID:       m.VehicleID,
		MaintenanceType: models.OilChange,
		DueDate:         due,
		Mileage:         mileage,
		IsActive:        true,
	})
	r.logger.Debug(ctx, "reminder derived", "vehicle", m.VehicleID, "reminder", op.Value().ID, "due", due)
}
