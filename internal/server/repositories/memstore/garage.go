package memstore

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophgarage/internal/models"
)

type vehicleRepo struct {
	records[models.Vehicle]
}

func newVehicleRepo(s *Store) *vehicleRepo {
	return &vehicleRepo{records[models.Vehicle]{
		coll:  collection[models.Vehicle]{s, vehiclesCollection},
		id:    func(v *models.Vehicle) *models.ID { return &v.ID },
		owner: func(v models.Vehicle) models.ID { return v.UserID },
	}}
}

func (r *vehicleRepo) Create(_ context.Context, v *models.Vehicle) error { return r.create(v) }

func (r *vehicleRepo) Get(_ context.Context, userID, id models.ID) (*models.Vehicle, error) {
	return r.get(userID, id)
}

func (r *vehicleRepo) List(_ context.Context, userID models.ID, query string) ([]models.Vehicle, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	return r.list(userID,
		func(v models.Vehicle) bool {
			return query == "" ||
				strings.Contains(strings.ToLower(v.Brand), query) ||
				strings.Contains(strings.ToLower(v.Model), query) ||
				strings.Contains(strings.ToLower(v.Plate), query)
		},
		func(a, b models.Vehicle) bool {
			if a.Brand != b.Brand {
				return a.Brand < b.Brand
			}
			if a.Model != b.Model {
				return a.Model < b.Model
			}
			return a.ID < b.ID
		})
}

func (r *vehicleRepo) Update(_ context.Context, v *models.Vehicle) error { return r.update(v) }

func (r *vehicleRepo) Delete(_ context.Context, userID, id models.ID) error { return r.delete(userID, id) }

type maintenanceRepo struct {
	records[models.Maintenance]
}

func newMaintenanceRepo(s *Store) *maintenanceRepo {
	return &maintenanceRepo{records[models.Maintenance]{
		coll:  collection[models.Maintenance]{s, maintenancesCollection},
		id:    func(m *models.Maintenance) *models.ID { return &m.ID },
		owner: func(m models.Maintenance) models.ID { return m.UserID },
	}}
}

func (r *maintenanceRepo) Create(_ context.Context, m *models.Maintenance) error { return r.create(m) }

func (r *maintenanceRepo) Get(_ context.Context, userID, id models.ID) (*models.Maintenance, error) {
	return r.get(userID, id)
}

func (r *maintenanceRepo) List(_ context.Context, userID, vehicleID models.ID) ([]models.Maintenance, error) {
	return r.list(userID,
		func(m models.Maintenance) bool { return vehicleID == "" || m.VehicleID == vehicleID },
		func(a, b models.Maintenance) bool {
			if !a.Date.Equal(b.Date) {
				return a.Date.After(b.Date)
			}
			return a.ID < b.ID
		})
}

func (r *maintenanceRepo) Update(_ context.Context, m *models.Maintenance) error { return r.update(m) }

func (r *maintenanceRepo) Delete(_ context.Context, userID, id models.ID) error {
	return r.delete(userID, id)
}

func (r *maintenanceRepo) DeleteByVehicle(_ context.Context, userID, vehicleID models.ID) error {
	return r.deleteWhere(userID, func(m models.Maintenance) bool { return m.VehicleID == vehicleID })
}

type reminderRepo struct {
	records[models.Reminder]
}

func newReminderRepo(s *Store) *reminderRepo {
	return &reminderRepo{records[models.Reminder]{
		coll:  collection[models.Reminder]{s, remindersCollection},
		id:    func(r *models.Reminder) *models.ID { return &r.ID },
		owner: func(r models.Reminder) models.ID { return r.UserID },
	}}
}

func (r *reminderRepo) Create(_ context.Context, rem *models.Reminder) error { return r.create(rem) }

func (r *reminderRepo) Get(_ context.Context, userID, id models.ID) (*models.Reminder, error) {
	return r.get(userID, id)
}

func (r *reminderRepo) List(_ context.Context, userID, vehicleID models.ID) ([]models.Reminder, error) {
	return r.list(userID,
		func(rem models.Reminder) bool { return vehicleID == "" || rem.VehicleID == vehicleID },
		func(a, b models.Reminder) bool {
			if !a.DueDate.Equal(b.DueDate) {
				return a.DueDate.Before(b.DueDate)
			}
			return a.ID < b.ID
		})
}

func (r *reminderRepo) Update(_ context.Context, rem *models.Reminder) error { return r.update(rem) }

func (r *reminderRepo) Delete(_ context.Context, userID, id models.ID) error {
	return r.delete(userID, id)
}

func (r *reminderRepo) DeleteByVehicle(_ context.Context, userID, vehicleID models.ID) error {
	return r.deleteWhere(userID, func(rem models.Reminder) bool { return rem.VehicleID == vehicleID })
}
