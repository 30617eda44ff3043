package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels_SurviveWrapping(t *testing.T) {
	for _, e := range []error{
		ErrorNotFound, ErrorAlreadyExists, ErrorInternal, ErrorUnauthorized,
		ErrorValidation, ErrorForeignVehicle, ErrInvalidToken, ErrInvalidAuthHeaderFormat,
	} {
		wrapped := fmt.Errorf("layer: %w", e)
		assert.True(t, errors.Is(wrapped, e), e.Error())
	}
}

func TestSentinels_AreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrorNotFound, ErrorAlreadyExists))
	assert.False(t, errors.Is(ErrorUnauthorized, ErrInvalidToken))
}
