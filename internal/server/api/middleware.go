package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/common"
	"github.com/dmitrijs2005/gophgarage/internal/logging"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/dmitrijs2005/gophgarage/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userId"

// AuthMiddleware requires a valid bearer token. A missing or malformed
// Authorization header is answered with 401, a token that fails
// verification (expired included) with 403.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeader)
		if header == "" {
			abortWithError(c, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
			return
		}

		tokenString, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || strings.TrimSpace(tokenString) == "" {
			abortWithError(c, http.StatusUnauthorized, CodeUnauthorized, common.ErrInvalidAuthHeaderFormat.Error())
			return
		}

		claims, err := auth.ParseToken(strings.TrimSpace(tokenString), secret)
		if err != nil {
			abortWithError(c, http.StatusForbidden, CodeForbidden, common.ErrInvalidToken.Error())
			return
		}

		c.Set(userIDKey, models.ID(claims.UserID))
		c.Next()
	}
}

// currentUser returns the user set by AuthMiddleware.
func currentUser(c *gin.Context) models.ID {
	return c.MustGet(userIDKey).(models.ID)
}

// RequestLogger logs one line per request.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
