package middleware

import (
	"crypto/subtle"
	"net/http"

	"clinicdesk/services/messaging"

	"github.com/gin-gonic/gin"
)

// MessagingSecretMiddleware guards the messaging endpoint with a shared
// secret header. An empty secret leaves the endpoint open, which is only
// useful in development.
func MessagingSecretMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		got := c.GetHeader(messaging.SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, messaging.CallableResponse{
				Error: &messaging.CallableError{Status: "UNAUTHENTICATED", Message: "missing or invalid messaging secret"},
			})
			return
		}
		c.Next()
	}
}
