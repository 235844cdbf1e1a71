package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinicdesk/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenVerifier checks a Firebase ID token. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAdminMiddleware admits requests carrying a valid Firebase ID token
// whose email claim matches adminEmail. An empty adminEmail admits any
// verified user.
func FirebaseAdminMiddleware(verifier TokenVerifier, adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(utils.AuthorizationHeader)
		if authHeader == "" || !strings.HasPrefix(authHeader, utils.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}
		idToken := strings.TrimPrefix(authHeader, utils.BearerPrefix)

		if verifier == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, utils.ErrorResponse{Message: "Admin authentication unavailable"})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			zap.L().Warn("admin token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Invalid token"})
			return
		}

		email, _ := token.Claims["email"].(string)
		if adminEmail != "" && !strings.EqualFold(email, adminEmail) {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: "Unauthorized admin access"})
			return
		}

		c.Set(utils.ContextAdminUID, token.UID)
		c.Set(utils.ContextAdminEmail, email)
		c.Next()
	}
}
