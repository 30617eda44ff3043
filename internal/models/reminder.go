package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/timex"
)

// Reminder schedules an upcoming service for a vehicle.
type Reminder struct {
	ID              ID        `json:"id" db:"id"`
	UserID          ID        `json:"userId" db:"user_id"`
	VehicleID       ID        `json:"vehicleId" db:"vehicle_id"`
	MaintenanceType string    `json:"maintenanceType" db:"maintenance_type"`
	DueDate         time.Time `json:"dueDate" db:"due_date"`
	// Mileage is the odometer target; zero means none.
	Mileage  int  `json:"mileage,omitempty" db:"mileage"`
	IsActive bool `json:"isActive" db:"is_active"`
}

func (r Reminder) Validate() error {
	var missing []string
	if r.VehicleID == "" {
		missing = append(missing, "vehicleId")
	}
	if strings.TrimSpace(r.MaintenanceType) == "" {
		missing = append(missing, "maintenanceType")
	}
	if r.DueDate.IsZero() {
		missing = append(missing, "dueDate")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if r.Mileage < 0 {
		return &ValidationError{Fields: []string{"mileage"}, Reason: "must not be negative"}
	}
	return nil
}

// NextAfterMaintenance returns the due date and mileage target of the
// reminder that follows a recurring maintenance.
func NextAfterMaintenance(m Maintenance) (time.Time, int) {
	return timex.AddMonths(m.Date, RecurrenceMonths), m.Mileage + RecurrenceMileage
}

// Successor returns the active reminder that follows r once r is completed.
// A reminder without mileage target yields a successor without one.
func (r Reminder) Successor() Reminder {
	next := Reminder{
		UserID:          r.UserID,
		VehicleID:       r.VehicleID,
		MaintenanceType: r.MaintenanceType,
		DueDate:         timex.AddMonths(r.DueDate, RecurrenceMonths),
		IsActive:        true,
	}
	if r.Mileage > 0 {
		next.Mileage = r.Mileage + RecurrenceMileage
	}
	return next
}
