package api

import (
	"net/http"

	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) registerDevice(c *gin.Context) {
	var req models.DeviceRegistration
	if !bindJSON(c, &req) {
		return
	}
	if err := h.garage.RegisterDevice(c.Request.Context(), currentUser(c), req.Token); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) vehicleImageUpload(c *gin.Context) {
	up, err := h.images.UploadURL(c.Request.Context(), currentUser(c), pathID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, up)
}

func (h *Handler) vehicleImage(c *gin.Context) {
	u, err := h.images.DownloadURL(c.Request.Context(), currentUser(c), pathID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
