package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the id of the acting user. The gateway in front of this
// service authenticates the caller and forwards the id in this header.
const Header = "X-Sharer-User-Id"

const contextKey = "sharerID"

// Required is a Gin middleware that resolves the acting user from the
// X-Sharer-User-Id header. Existence of the user is checked by the
// services themselves, the middleware only requires a well-formed id.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + Header + " header",
			})
			return
		}

		if _, err := uuid.Parse(id); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + Header + " header",
			})
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}
