package api

import (
	"net/http"

	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context) models.ID {
	return models.ID(c.Param("id"))
}

func (h *Handler) listVehicles(c *gin.Context) {
	items, err := h.garage.ListVehicles(c.Request.Context(), currentUser(c), c.Query("q"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createVehicle(c *gin.Context) {
	var v models.Vehicle
	if !bindJSON(c, &v) {
		return
	}
	created, err := h.garage.CreateVehicle(c.Request.Context(), currentUser(c), v)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateVehicle(c *gin.Context) {
	var v models.Vehicle
	if !bindJSON(c, &v) {
		return
	}
	updated, err := h.garage.UpdateVehicle(c.Request.Context(), currentUser(c), pathID(c), v)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	if err := h.garage.DeleteVehicle(c.Request.Context(), currentUser(c), pathID(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listMaintenances(c *gin.Context) {
	items, err := h.garage.ListMaintenances(c.Request.Context(), currentUser(c), models.ID(c.Query("vehicleId")))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createMaintenance(c *gin.Context) {
	var m models.Maintenance
	if !bindJSON(c, &m) {
		return
	}
	created, err := h.garage.CreateMaintenance(c.Request.Context(), currentUser(c), m)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateMaintenance(c *gin.Context) {
	var m models.Maintenance
	if !bindJSON(c, &m) {
		return
	}
	updated, err := h.garage.UpdateMaintenance(c.Request.Context(), currentUser(c), pathID(c), m)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteMaintenance(c *gin.Context) {
	if err := h.garage.DeleteMaintenance(c.Request.Context(), currentUser(c), pathID(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listReminders(c *gin.Context) {
	items, err := h.garage.ListReminders(c.Request.Context(), currentUser(c), models.ID(c.Query("vehicleId")))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createReminder(c *gin.Context) {
	var r models.Reminder
	if !bindJSON(c, &r) {
		return
	}
	created, err := h.garage.CreateReminder(c.Request.Context(), currentUser(c), r)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateReminder(c *gin.Context) {
	var r models.Reminder
	if !bindJSON(c, &r) {
		return
	}
	updated, err := h.garage.UpdateReminder(c.Request.Context(), currentUser(c), pathID(c), r)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteReminder(c *gin.Context) {
	if err := h.garage.DeleteReminder(c.Request.Context(), currentUser(c), pathID(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// sync answers with the caller's current collection wrapped under its name,
// e.g. {"vehicles": [...]}. The request body is accepted for compatibility
// with older clients and ignored.
func (h *Handler) sync(c *gin.Context) {
	ctx, userID := c.Request.Context(), currentUser(c)
	collection := c.Param("collection")

	var (
		items any
		err   error
	)
	switch collection {
	case "vehicles":
		items, err = h.garage.ListVehicles(ctx, userID, "")
	case "maintenances":
		items, err = h.garage.ListMaintenances(ctx, userID, "")
	case "reminders":
		items, err = h.garage.ListReminders(ctx, userID, "")
	default:
		abortWithError(c, http.StatusNotFound, CodeNotFound, "unknown collection")
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{collection: items})
}
