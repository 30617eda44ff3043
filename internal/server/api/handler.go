// Package api exposes the server services as a JSON REST API built on gin.
//
// Every route lives under a configurable prefix (default "/api"). Routes
// other than /health and /auth/* require a bearer token; see
// AuthMiddleware. Failures are answered with models.ErrorResponse.
package api

import (
	"net/http"

	"github.com/dmitrijs2005/gophgarage/internal/logging"
	"github.com/dmitrijs2005/gophgarage/internal/server/services"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	users  *services.UserService
	garage *services.GarageService
	images *services.ImageService
	secret []byte
	logger logging.Logger
}

func NewHandler(users *services.UserService, garage *services.GarageService, images *services.ImageService,
	secret []byte, logger logging.Logger) *Handler {
	return &Handler{users: users, garage: garage, images: images, secret: secret, logger: logger}
}

// NewRouter builds a gin engine with recovery, request logging and every
// route mounted under prefix.
func (h *Handler) NewRouter(prefix string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(h.logger))
	h.SetupRoutes(router, prefix)
	return router
}

func (h *Handler) SetupRoutes(router *gin.Engine, prefix string) {
	api := router.Group(prefix)

	api.GET("/health", h.health)

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", h.register)
	authRoutes.POST("/login", h.login)

	protected := api.Group("", AuthMiddleware(h.secret))

	protected.GET("/vehicles", h.listVehicles)
	protected.POST("/vehicles", h.createVehicle)
	protected.PUT("/vehicles/:id", h.updateVehicle)
	protected.DELETE("/vehicles/:id", h.deleteVehicle)
	protected.POST("/vehicles/:id/image", h.vehicleImageUpload)
	protected.GET("/vehicles/:id/image", h.vehicleImage)

	protected.GET("/maintenances", h.listMaintenances)
	protected.POST("/maintenances", h.createMaintenance)
	protected.PUT("/maintenances/:id", h.updateMaintenance)
	protected.DELETE("/maintenances/:id", h.deleteMaintenance)

	protected.GET("/reminders", h.listReminders)
	protected.POST("/reminders", h.createReminder)
	protected.PUT("/reminders/:id", h.updateReminder)
	protected.DELETE("/reminders/:id", h.deleteReminder)

	protected.POST("/notifications/register-device", h.registerDevice)
	protected.POST("/sync/:collection", h.sync)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSON decodes the request body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, http.StatusBadRequest, CodeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
