package models

import (
	"strings"
	"time"
)

// OilChange is the maintenance category that drives recurring reminders.
const OilChange = "oil change"

// Recurrence of OilChange reminders.
const (
	RecurrenceMonths  = 6
	RecurrenceMileage = 5000
)

// Maintenance is a service event performed on a vehicle.
type Maintenance struct {
	ID        ID        `json:"id" db:"id"`
	UserID    ID        `json:"userId" db:"user_id"`
	VehicleID ID        `json:"vehicleId" db:"vehicle_id"`
	Type      string    `json:"type" db:"type"`
	Date      time.Time `json:"date" db:"date"`
	Mileage   int       `json:"mileage" db:"mileage"`
	Notes     string    `json:"notes,omitempty" db:"notes"`
	Cost      float64   `json:"cost,omitempty" db:"cost"`
}

// IsRecurring reports whether the maintenance belongs to the category that
// keeps a reminder scheduled.
func (m Maintenance) IsRecurring() bool {
	return IsRecurringCategory(m.Type)
}

// IsRecurringCategory compares case-insensitively against OilChange.
func IsRecurringCategory(category string) bool {
	return strings.EqualFold(strings.TrimSpace(category), OilChange)
}

func (m Maintenance) Validate() error {
	var missing []string
	if m.VehicleID == "" {
		missing = append(missing, "vehicleId")
	}
	if strings.TrimSpace(m.Type) == "" {
		missing = append(missing, "type")
	}
	if m.Date.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if m.Mileage < 0 {
		return &ValidationError{Fields: []string{"mileage"}, Reason: "must not be negative"}
	}
	if m.Cost < 0 {
		return &ValidationError{Fields: []string{"cost"}, Reason: "must not be negative"}
	}
	return nil
}
