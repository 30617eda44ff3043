package client

import (
	"context"

	"github.com/dmitrijs2005/gophgarage/internal/models"
)

// TokenProvider supplies the bearer token of the active session.
type TokenProvider interface {
	Token() string
}

// Client is the authenticated remote store.
type Client interface {
	Register(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Ping(ctx context.Context) error

	ListVehicles(ctx context.Context, query string) ([]models.Vehicle, error)
	CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	UpdateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id models.ID) error

	ListMaintenances(ctx context.Context, vehicleID models.ID) ([]models.Maintenance, error)
	CreateMaintenance(ctx context.Context, m models.Maintenance) (models.Maintenance, error)
	UpdateMaintenance(ctx context.Context, m models.Maintenance) (models.Maintenance, error)
	DeleteMaintenance(ctx context.Context, id models.ID) error

	ListReminders(ctx context.Context, vehicleID models.ID) ([]models.Reminder, error)
	CreateReminder(ctx context.Context, r models.Reminder) (models.Reminder, error)
	UpdateReminder(ctx context.Context, r models.Reminder) (models.Reminder, error)
	DeleteReminder(ctx context.Context, id models.ID) error

	RegisterDevice(ctx context.Context, token string) error
	VehicleImageUploadURL(ctx context.Context, vehicleID models.ID) (*models.ImageUpload, error)
	VehicleImageURL(ctx context.Context, vehicleID models.ID) (string, error)
}
