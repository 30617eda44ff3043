package api

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophgarage/internal/common"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/gin-gonic/gin"
)

// Error codes of models.ErrorResponse.
const (
	CodeBadRequest     = "BAD_REQUEST"
	CodeValidation     = "VALIDATION_ERROR"
	CodeInvalidVehicle = "INVALID_VEHICLE"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInternal       = "INTERNAL_ERROR"
)

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// handleError maps a service error to its HTTP answer. Unexpected errors
// are logged and reported without detail.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		abortWithError(c, http.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, common.ErrorForeignVehicle):
		abortWithError(c, http.StatusBadRequest, CodeInvalidVehicle, "vehicle not found")
	case errors.Is(err, common.ErrorNotFound):
		abortWithError(c, http.StatusNotFound, CodeNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		abortWithError(c, http.StatusConflict, CodeConflict, "username or email already taken")
	case errors.Is(err, common.ErrorUnauthorized):
		abortWithError(c, http.StatusUnauthorized, CodeUnauthorized, "invalid credentials")
	default:
		h.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
