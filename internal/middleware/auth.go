package middleware

import (
	"net/http"
	"puredrop/internal/auth"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const identityKey = "identity"

// AuthRequired accepts requests carrying "Authorization: Bearer <token>" with
// a valid token and stores the caller's identity on the request context.
func AuthRequired(tokens *auth.TokenManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.WithField("path", c.Request.URL.Path).Debug("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token missing"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			logger.WithField("path", c.Request.URL.Path).Debug("Authorization header malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token missing"})
			return
		}

		identity, err := tokens.Verify(parts[1])
		if err != nil {
			logger.WithError(err).WithField("path", c.Request.URL.Path).Info("Rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identity))
		c.Set(identityKey, identity)
		c.Next()
	}
}

// Identity returns the caller attached by AuthRequired.
func Identity(c *gin.Context) (auth.Identity, bool) {
	return auth.IdentityFrom(c.Request.Context())
}
