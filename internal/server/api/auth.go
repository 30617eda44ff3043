package api

import (
	"net/http"

	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) register(c *gin.Context) {
	var creds models.Credentials
	if !bindJSON(c, &creds) {
		return
	}

	resp, err := h.users.Register(c.Request.Context(), creds)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "user registered", "id", resp.ID)
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) login(c *gin.Context) {
	var creds models.Credentials
	if !bindJSON(c, &creds) {
		return
	}

	resp, err := h.users.Login(c.Request.Context(), creds)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
