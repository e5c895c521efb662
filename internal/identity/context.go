package identity

import "github.com/gin-gonic/gin"

// SharerID returns the acting user's id or empty string.
func SharerID(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
