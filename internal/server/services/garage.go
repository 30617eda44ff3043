package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophgarage/internal/common"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	sm "github.com/dmitrijs2005/gophgarage/internal/server/models"
	"github.com/dmitrijs2005/gophgarage/internal/server/repositories"
)

// GarageService manages vehicles, maintenances, reminders and device tokens
// on behalf of an authenticated user. Identifiers sent by clients on create
// are ignored; the store assigns them.
type GarageService struct {
	repomanager repositories.RepositoryManager
}

func NewGarageService(m repositories.RepositoryManager) *GarageService {
	return &GarageService{repomanager: m}
}

func (s *GarageService) ListVehicles(ctx context.Context, userID models.ID, query string) ([]models.Vehicle, error) {
	return s.repomanager.Vehicles().List(ctx, userID, query)
}

func (s *GarageService) CreateVehicle(ctx context.Context, userID models.ID, v models.Vehicle) (*models.Vehicle, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	v.ID, v.UserID = "", userID
	if err := s.repomanager.Vehicles().Create(ctx, &v); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return &v, nil
}

func (s *GarageService) UpdateVehicle(ctx context.Context, userID, id models.ID, v models.Vehicle) (*models.Vehicle, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	v.ID, v.UserID = id, userID
	if err := s.repomanager.Vehicles().Update(ctx, &v); err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	return &v, nil
}

// DeleteVehicle removes the vehicle with its maintenances and reminders in
// one transaction.
func (s *GarageService) DeleteVehicle(ctx context.Context, userID, id models.ID) error {
	return s.repomanager.WithTx(ctx, func(ctx context.Context, tx repositories.RepositoryManager) error {
		if _, err := tx.Vehicles().Get(ctx, userID, id); err != nil {
			return fmt.Errorf("delete vehicle: %w", err)
		}
		if err := tx.Maintenances().DeleteByVehicle(ctx, userID, id); err != nil {
			return fmt.Errorf("delete maintenances: %w", err)
		}
		if err := tx.Reminders().DeleteByVehicle(ctx, userID, id); err != nil {
			return fmt.Errorf("delete reminders: %w", err)
		}
		if err := tx.Vehicles().Delete(ctx, userID, id); err != nil {
			return fmt.Errorf("delete vehicle: %w", err)
		}
		return nil
	})
}

func (s *GarageService) ListMaintenances(ctx context.Context, userID, vehicleID models.ID) ([]models.Maintenance, error) {
	return s.repomanager.Maintenances().List(ctx, userID, vehicleID)
}

func (s *GarageService) CreateMaintenance(ctx context.Context, userID models.ID, m models.Maintenance) (*models.Maintenance, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.ownVehicle(ctx, userID, m.VehicleID); err != nil {
		return nil, err
	}
	m.ID, m.UserID = "", userID
	if err := s.repomanager.Maintenances().Create(ctx, &m); err != nil {
		return nil, fmt.Errorf("create maintenance: %w", err)
	}
	return &m, nil
}

func (s *GarageService) UpdateMaintenance(ctx context.Context, userID, id models.ID, m models.Maintenance) (*models.Maintenance, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Maintenances().Get(ctx, userID, id); err != nil {
		return nil, fmt.Errorf("update maintenance: %w", err)
	}
	if err := s.ownVehicle(ctx, userID, m.VehicleID); err != nil {
		return nil, err
	}
	m.ID, m.UserID = id, userID
	if err := s.repomanager.Maintenances().Update(ctx, &m); err != nil {
		return nil, fmt.Errorf("update maintenance: %w", err)
	}
	return &m, nil
}

func (s *GarageService) DeleteMaintenance(ctx context.Context, userID, id models.ID) error {
	if err := s.repomanager.Maintenances().Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete maintenance: %w", err)
	}
	return nil
}

func (s *GarageService) ListReminders(ctx context.Context, userID, vehicleID models.ID) ([]models.Reminder, error) {
	return s.repomanager.Reminders().List(ctx, userID, vehicleID)
}

func (s *GarageService) CreateReminder(ctx context.Context, userID models.ID, r models.Reminder) (*models.Reminder, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.ownVehicle(ctx, userID, r.VehicleID); err != nil {
		return nil, err
	}
	r.ID, r.UserID = "", userID
	if err := s.repomanager.Reminders().Create(ctx, &r); err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	return &r, nil
}

func (s *GarageService) UpdateReminder(ctx context.Context, userID, id models.ID, r models.Reminder) (*models.Reminder, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Reminders().Get(ctx, userID, id); err != nil {
		return nil, fmt.Errorf("update reminder: %w", err)
	}
	if err := s.ownVehicle(ctx, userID, r.VehicleID); err != nil {
		return nil, err
	}
	r.ID, r.UserID = id, userID
	if err := s.repomanager.Reminders().Update(ctx, &r); err != nil {
		return nil, fmt.Errorf("update reminder: %w", err)
	}
	return &r, nil
}

func (s *GarageService) DeleteReminder(ctx context.Context, userID, id models.ID) error {
	if err := s.repomanager.Reminders().Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}

// RegisterDevice stores a push token for the user.
func (s *GarageService) RegisterDevice(ctx context.Context, userID models.ID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return &models.ValidationError{Fields: []string{"token"}}
	}
	if err := s.repomanager.Devices().Register(ctx, &sm.DeviceToken{Token: token, UserID: string(userID)}); err != nil {
		return fmt.Errorf("register device: %w", err)
	}
	return nil
}

// ownVehicle reports common.ErrorForeignVehicle unless vehicleID is one of
// the user's vehicles.
func (s *GarageService) ownVehicle(ctx context.Context, userID, vehicleID models.ID) error {
	_, err := s.repomanager.Vehicles().Get(ctx, userID, vehicleID)
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("%w: %s", common.ErrorForeignVehicle, vehicleID)
	}
	return err
}
