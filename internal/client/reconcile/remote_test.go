package reconcile

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/gophgarage/internal/models"
)

// fakeRemote is an in-memory server. Setting gate holds every create until
// the channel is closed. Updates and deletes are recorded even when they fail.
type fakeRemote struct {
	mu  sync.Mutex
	seq int

	vehicles     []models.Vehicle
	maintenances []models.Maintenance
	reminders    []models.Reminder

	createErr error
	updateErr error
	deleteErr error
	listErr   error
	gate      chan struct{}

	deleted []models.ID
	updated []models.ID
}

func (f *fakeRemote) nextID(prefix string) models.ID {
	f.seq++
	return models.ID(fmt.Sprintf("%s-%d", prefix, f.seq))
}

func (f *fakeRemote) hold(ctx context.Context) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeRemote) ListVehicles(context.Context, string) ([]models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.vehicles), f.listErr
}

func (f *fakeRemote) CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	if err := f.hold(ctx); err != nil {
		return models.Vehicle{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Vehicle{}, f.createErr
	}
	v.ID = f.nextID("v")
	f.vehicles = append(f.vehicles, v)
	return v, nil
}

func (f *fakeRemote) UpdateVehicle(_ context.Context, v models.Vehicle) (models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, v.ID)
	if f.updateErr != nil {
		return models.Vehicle{}, f.updateErr
	}
	for i := range f.vehicles {
		if f.vehicles[i].ID == v.ID {
			f.vehicles[i] = v
		}
	}
	return v, nil
}

func (f *fakeRemote) DeleteVehicle(_ context.Context, id models.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.vehicles = slices.DeleteFunc(f.vehicles, func(v models.Vehicle) bool { return v.ID == id })
	f.maintenances = slices.DeleteFunc(f.maintenances, func(m models.Maintenance) bool { return m.VehicleID == id })
	f.reminders = slices.DeleteFunc(f.reminders, func(m models.Reminder) bool { return m.VehicleID == id })
	return nil
}

func (f *fakeRemote) ListMaintenances(context.Context, models.ID) ([]models.Maintenance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.maintenances), f.listErr
}

func (f *fakeRemote) CreateMaintenance(ctx context.Context, m models.Maintenance) (models.Maintenance, error) {
	if err := f.hold(ctx); err != nil {
		return models.Maintenance{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Maintenance{}, f.createErr
	}
	m.ID = f.nextID("m")
	f.maintenances = append(f.maintenances, m)
	return m, nil
}

func (f *fakeRemote) UpdateMaintenance(_ context.Context, m models.Maintenance) (models.Maintenance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, m.ID)
	if f.updateErr != nil {
		return models.Maintenance{}, f.updateErr
	}
	for i := range f.maintenances {
		if f.maintenances[i].ID == m.ID {
			f.maintenances[i] = m
		}
	}
	return m, nil
}

func (f *fakeRemote) DeleteMaintenance(_ context.Context, id models.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.maintenances = slices.DeleteFunc(f.maintenances, func(m models.Maintenance) bool { return m.ID == id })
	return nil
}

func (f *fakeRemote) ListReminders(context.Context, models.ID) ([]models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.reminders), f.listErr
}

func (f *fakeRemote) CreateReminder(ctx context.Context, r models.Reminder) (models.Reminder, error) {
	if err := f.hold(ctx); err != nil {
		return models.Reminder{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Reminder{}, f.createErr
	}
	r.ID = f.nextID("r")
	f.reminders = append(f.reminders, r)
	return r, nil
}

func (f *fakeRemote) UpdateReminder(_ context.Context, r models.Reminder) (models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, r.ID)
	if f.updateErr != nil {
		return models.Reminder{}, f.updateErr
	}
	for i := range f.reminders {
		if f.reminders[i].ID == r.ID {
			f.reminders[i] = r
		}
	}
	return r, nil
}

func (f *fakeRemote) DeleteReminder(_ context.Context, id models.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.reminders = slices.DeleteFunc(f.reminders, func(m models.Reminder) bool { return m.ID == id })
	return nil
}

func (f *fakeRemote) set(fn func(f *fakeRemote)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}
