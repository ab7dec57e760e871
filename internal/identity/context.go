package identity

import "github.com/gin-gonic/gin"

const contextKey = "actingUserID"

// UserID returns the acting user's id stored by Required, or 0.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
