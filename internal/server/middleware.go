package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const contextUserIDKey = "user_id"

// UserIdentityMiddleware reads the authenticated user id injected by
// the fronting gateway. Authentication itself is the host's concern.
func UserIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if raw != "" {
			c.Set(contextUserIDKey, raw)
		}
		c.Next()
	}
}

func (s *Server) userIDFromRequest(c *gin.Context) (snowflake.ID, bool) {
	value, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0, false
	}
	raw, ok := value.(string)
	if !ok {
		return 0, false
	}
	userID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || userID == 0 {
		return 0, false
	}
	return userID, true
}
