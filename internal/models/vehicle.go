package models

import (
	"fmt"
	"strings"
	"time"
)

// Vehicle is a car registered by a user.
type Vehicle struct {
	ID     ID     `json:"id" db:"id"`
	UserID ID     `json:"userId" db:"user_id"`
	Brand  string `json:"brand" db:"brand"`
	Model  string `json:"model" db:"model"`
	Year   int    `json:"year" db:"year"`
	Plate  string `json:"plate" db:"plate"`
	// Image is the object-storage key of the vehicle photo, if any.
	Image string `json:"image,omitempty" db:"image"`
}

// firstCarYear is the year the first production automobile was built.
const firstCarYear = 1886

// Validate checks the fields a vehicle cannot be stored without.
func (v Vehicle) Validate() error {
	var missing []string
	if strings.TrimSpace(v.Brand) == "" {
		missing = append(missing, "brand")
	}
	if strings.TrimSpace(v.Model) == "" {
		missing = append(missing, "model")
	}
	if strings.TrimSpace(v.Plate) == "" {
		missing = append(missing, "plate")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if maxYear := time.Now().Year() + 1; v.Year < firstCarYear || v.Year > maxYear {
		return &ValidationError{Fields: []string{"year"}, Reason: fmt.Sprintf("must be between %d and %d", firstCarYear, maxYear)}
	}
	return nil
}
