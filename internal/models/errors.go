package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophgarage/internal/common"
)

// ValidationError lists the offending fields of a record.
// It matches common.ErrorValidation under errors.Is.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", strings.Join(e.Fields, ", "), e.Reason)
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == common.ErrorValidation
}
