package reconcile

import (
	"errors"

	"github.com/dmitrijs2005/gophgarage/internal/client/client"
	"github.com/dmitrijs2005/gophgarage/internal/common"
)

var (
	// ErrNoActiveSession rejects writes while nobody is logged in.
	ErrNoActiveSession = errors.New("no active session")

	// ErrRemoteUnavailable matches network and backend failures of remote calls.
	ErrRemoteUnavailable = client.ErrUnavailable

	// ErrNotFound is returned by lookups of unknown local identifiers.
	// Updates and deletes of unknown identifiers are silent no-ops instead.
	ErrNotFound = common.ErrorNotFound

	// ErrValidationFailed matches records missing required fields or
	// referencing a vehicle the user does not own.
	ErrValidationFailed = common.ErrorValidation
)
