package middleware

import (
	"fmt"
	"net/http"

	"github.com/cyphera/cyphera-autotax/types/api/responses"
	"github.com/gin-gonic/gin"
)

// BodySizeLimit rejects requests whose declared body exceeds maxBytes and caps
// reads for requests that do not declare a length.
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, responses.ErrorResponse{
				Error: fmt.Sprintf("request body too large, maximum size is %d bytes", maxBytes),
			})
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
