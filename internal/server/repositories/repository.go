// Package repositories declares the storage contracts of the server.
// Implementations live in sqlstore (postgres and sqlite) and memstore;
// repomanager picks one from the configuration.
//
// Every record lookup is scoped to its owner: a record that exists but
// belongs to another user is reported as common.ErrorNotFound.
package repositories

import (
	"context"

	"github.com/dmitrijs2005/gophgarage/internal/models"
	sm "github.com/dmitrijs2005/gophgarage/internal/server/models"
)

// Users stores accounts.
type Users interface {
	// Create inserts u, assigning an ID when empty. A taken username or
	// email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, u *sm.User) error
	// GetByUsername matches case-insensitively.
	GetByUsername(ctx context.Context, username string) (*sm.User, error)
}

// Vehicles stores the vehicles of every user.
type Vehicles interface {
	// Create inserts v, assigning an ID when empty.
	Create(ctx context.Context, v *models.Vehicle) error
	Get(ctx context.Context, userID, id models.ID) (*models.Vehicle, error)
	// List returns the user's vehicles whose brand, model or plate contains
	// query, case-insensitively. An empty query matches all.
	List(ctx context.Context, userID models.ID, query string) ([]models.Vehicle, error)
	Update(ctx context.Context, v *models.Vehicle) error
	Delete(ctx context.Context, userID, id models.ID) error
}

// Maintenances stores service records.
type Maintenances interface {
	Create(ctx context.Context, m *models.Maintenance) error
	Get(ctx context.Context, userID, id models.ID) (*models.Maintenance, error)
	// List orders by date, newest first. An empty vehicleID lists all of
	// the user's records.
	List(ctx context.Context, userID, vehicleID models.ID) ([]models.Maintenance, error)
	Update(ctx context.Context, m *models.Maintenance) error
	Delete(ctx context.Context, userID, id models.ID) error
	DeleteByVehicle(ctx context.Context, userID, vehicleID models.ID) error
}

// Reminders stores scheduled services.
type Reminders interface {
	Create(ctx context.Context, r *models.Reminder) error
	Get(ctx context.Context, userID, id models.ID) (*models.Reminder, error)
	// List orders by due date, soonest first. An empty vehicleID lists all
	// of the user's reminders.
	List(ctx context.Context, userID, vehicleID models.ID) ([]models.Reminder, error)
	Update(ctx context.Context, r *models.Reminder) error
	Delete(ctx context.Context, userID, id models.ID) error
	DeleteByVehicle(ctx context.Context, userID, vehicleID models.ID) error
}

// Devices stores push-notification tokens.
type Devices interface {
	// Register binds d.Token to d.UserID, replacing an earlier owner.
	Register(ctx context.Context, d *sm.DeviceToken) error
}

// RepositoryManager hands out repositories bound to one storage.
type RepositoryManager interface {
	Users() Users
	Vehicles() Vehicles
	Maintenances() Maintenances
	Reminders() Reminders
	Devices() Devices

	// WithTx runs fn with a manager whose repositories share one
	// transaction. It commits when fn returns nil.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx RepositoryManager) error) error

	Close() error
}
