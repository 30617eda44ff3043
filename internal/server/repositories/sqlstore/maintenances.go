package sqlstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophgarage/internal/dbx"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/google/uuid"
)

const maintenanceColumns = `id, user_id, vehicle_id, type, date, mileage, notes, cost`

type maintenanceRepo struct {
	db dbx.Ext
}

func (r *maintenanceRepo) Create(ctx context.Context, m *models.Maintenance) error {
	if m.ID == "" {
		m.ID = models.ID(uuid.NewString())
	}
	_, err := exec(ctx, r.db,
		`INSERT INTO maintenances (`+maintenanceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(m.ID), string(m.UserID), string(m.VehicleID), m.Type, m.Date, m.Mileage, m.Notes, m.Cost)
	return err
}

func (r *maintenanceRepo) Get(ctx context.Context, userID, id models.ID) (*models.Maintenance, error) {
	m := &models.Maintenance{}
	err := getOne(ctx, r.db, m,
		`SELECT `+maintenanceColumns+` FROM maintenances WHERE id = ? AND user_id = ?`,
		string(id), string(userID))
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maintenanceRepo) List(ctx context.Context, userID, vehicleID models.ID) ([]models.Maintenance, error) {
	q := `SELECT ` + maintenanceColumns + ` FROM maintenances WHERE user_id = ?`
	args := []any{string(userID)}
	if vehicleID != "" {
		q += ` AND vehicle_id = ?`
		args = append(args, string(vehicleID))
	}
	q += ` ORDER BY date DESC, id`

	items := []models.Maintenance{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *maintenanceRepo) Update(ctx context.Context, m *models.Maintenance) error {
	return execOne(ctx, r.db,
		`UPDATE maintenances SET vehicle_id = ?, type = ?, date = ?, mileage = ?, notes = ?, cost = ?
		 WHERE id = ? AND user_id = ?`,
		string(m.VehicleID), m.Type, m.Date, m.Mileage, m.Notes, m.Cost, string(m.ID), string(m.UserID))
}

func (r *maintenanceRepo) Delete(ctx context.Context, userID, id models.ID) error {
	return execOne(ctx, r.db, `DELETE FROM maintenances WHERE id = ? AND user_id = ?`, string(id), string(userID))
}

func (r *maintenanceRepo) DeleteByVehicle(ctx context.Context, userID, vehicleID models.ID) error {
	_, err := exec(ctx, r.db, `DELETE FROM maintenances WHERE vehicle_id = ? AND user_id = ?`,
		string(vehicleID), string(userID))
	return err
}
