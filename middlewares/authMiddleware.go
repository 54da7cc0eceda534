package middlewares

import (
	"net/http"
	"strings"

	"civicreport-be/apperrors"
	"civicreport-be/auth"
	"civicreport-be/models"

	"github.com/gin-gonic/gin"
)

const identityContextKey = "identity"

// AuthMiddleware resolves the bearer credential through the authenticator
// and stashes the resulting identity in the request context. Requests
// without a presentable, valid credential never reach the handlers.
func AuthMiddleware(authenticator auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
			return
		}

		// Extracting token from "Bearer <token>" format
		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}

		identity, err := authenticator.Verify(tokenString)
		if err != nil {
			status := apperrors.StatusCode(err)
			message := "Invalid authorization token"
			if appErr, ok := apperrors.AsAppError(err); ok {
				message = appErr.Message
			}
			c.JSON(status, gin.H{"error": message})
			c.Abort()
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the identity AuthMiddleware stored for this
// request.
func IdentityFromContext(c *gin.Context) (models.Identity, bool) {
	val, exists := c.Get(identityContextKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := val.(models.Identity)
	return identity, ok
}
