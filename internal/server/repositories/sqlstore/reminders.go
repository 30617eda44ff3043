package sqlstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophgarage/internal/dbx"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/google/uuid"
)

const reminderColumns = `id, user_id, vehicle_id, maintenance_type, due_date, mileage, is_active`

type reminderRepo struct {
	db dbx.Ext
}

func (r *reminderRepo) Create(ctx context.Context, rem *models.Reminder) error {
	if rem.ID == "" {
		rem.ID = models.ID(uuid.NewString())
	}
	_, err := exec(ctx, r.db,
		`INSERT INTO reminders (`+reminderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(rem.ID), string(rem.UserID), string(rem.VehicleID), rem.MaintenanceType, rem.DueDate, rem.Mileage, rem.IsActive)
	return err
}

func (r *reminderRepo) Get(ctx context.Context, userID, id models.ID) (*models.Reminder, error) {
	rem := &models.Reminder{}
	err := getOne(ctx, r.db, rem,
		`SELECT `+reminderColumns+` FROM reminders WHERE id = ? AND user_id = ?`,
		string(id), string(userID))
	if err != nil {
		return nil, err
	}
	return rem, nil
}

func (r *reminderRepo) List(ctx context.Context, userID, vehicleID models.ID) ([]models.Reminder, error) {
	q := `SELECT ` + reminderColumns + ` FROM reminders WHERE user_id = ?`
	args := []any{string(userID)}
	if vehicleID != "" {
		q += ` AND vehicle_id = ?`
		args = append(args, string(vehicleID))
	}
	q += ` ORDER BY due_date ASC, id`

	items := []models.Reminder{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *reminderRepo) Update(ctx context.Context, rem *models.Reminder) error {
	return execOne(ctx, r.db,
		`UPDATE reminders SET vehicle_id = ?, maintenance_type = ?, due_date = ?, mileage = ?, is_active = ?
		 WHERE id = ? AND user_id = ?`,
		string(rem.VehicleID), rem.MaintenanceType, rem.DueDate, rem.Mileage, rem.IsActive, string(rem.ID), string(rem.UserID))
}

func (r *reminderRepo) Delete(ctx context.Context, userID, id models.ID) error {
	return execOne(ctx, r.db, `DELETE FROM reminders WHERE id = ? AND user_id = ?`, string(id), string(userID))
}

func (r *reminderRepo) DeleteByVehicle(ctx context.Context, userID, vehicleID models.ID) error {
	_, err := exec(ctx, r.db, `DELETE FROM reminders WHERE vehicle_id = ? AND user_id = ?`,
		string(vehicleID), string(userID))
	return err
}
