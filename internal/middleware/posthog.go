package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fipithx/ficore_backend/internal/utils"
)

// pathsToSkip lists paths that never produce analytics events.
var pathsToSkip = map[string]bool{
	"/":       true,
	"/health": true,
}

// distinctID resolves who an event belongs to: an authenticated user, or the
// anonymous session used by the personal finance tools.
func distinctID(c *gin.Context) (string, bool) {
	if userID, ok := GetUserIDFromContext(c); ok {
		return userID, true
	}
	if sessionID := c.GetHeader("X-Session-ID"); sessionID != "" {
		return "anon:" + sessionID, true
	}
	return "", false
}

// PosthogMiddleware tracks successful API requests as PostHog events.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		id, ok := distinctID(c)
		if !ok {
			return
		}

		// "/api/v1/records" becomes "api_v1_records"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(id, eventName, props)
	}
}

// PosthogEvent sends a custom event from a handler, e.g. tool usage on the
// personal calculators.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}

	id, ok := distinctID(c)
	if !ok {
		return
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path

	posthogClient.Enqueue(id, eventName, properties)
}
