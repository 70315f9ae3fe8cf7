package middlewares

import (
	"diet-tracker-backend/enums"
	"diet-tracker-backend/services/auth"
	"diet-tracker-backend/services/user"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer token whose subject is an existing user.
func AuthMiddleware(tokens *auth.TokenService, users *user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		claims, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication credentials"})
			return
		}

		userEntity, err := users.FindByEmail(claims.Subject)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
				return
			}
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": enums.InternalErrorMessage})
			return
		}

		c.Set(enums.ContextUserID, userEntity.ID)
		c.Set(enums.ContextEmail, userEntity.Email)
		c.Next()
	}
}

// CurrentUserID returns the id stored by AuthMiddleware.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(enums.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
