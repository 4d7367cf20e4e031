package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
)

// currentUserKey is the key used to store the loaded user in the request context.
const currentUserKey = contextKey("currentUser")

// LoadUserMiddleware resolves the authenticated user ID set by AuthMiddleware
// into a full user record and stores it in the request context. Must run
// after AuthMiddleware.
func LoadUserMiddleware(userSvc portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := userSvc.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("Failed to load authenticated user", "user_id", userID, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), currentUserKey, user))
		c.Next()
	}
}

// GetUserFromContext retrieves the loaded user from the request context.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	user, ok := c.Request.Context().Value(currentUserKey).(*domain.User)
	return user, ok
}

// RequireRoles aborts with 403 unless the loaded user has one of the given
// roles. Admins always pass. Must run after LoadUserMiddleware.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if user.IsAdmin() {
			c.Next()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}

// RequireSetupComplete aborts with 403 until the user has finished the setup
// wizard. Admins always pass. Must run after LoadUserMiddleware.
func RequireSetupComplete() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !user.SetupComplete && !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account setup is not complete"})
			return
		}
		c.Next()
	}
}
