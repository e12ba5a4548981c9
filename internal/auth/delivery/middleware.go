package delivery

import (
	"net/http"
	"strings"

	authdomain "kanflow-backend/internal/auth/domain"
	"kanflow-backend/internal/auth/usecase"
	"kanflow-backend/internal/session"
	taskrepo "kanflow-backend/internal/task/repository"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer token.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveBearer(c, authUsecase)
		if !ok {
			return
		}
		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

// SessionMiddleware gates task and widget routes on the session mode: in
// guest mode requests run unauthenticated against the local store, otherwise
// a valid bearer token is required.
func SessionMiddleware(resolver *session.Resolver, authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if resolver.IsGuestMode() {
			c.Set("userID", taskrepo.GuestUserID)
			c.Set("guest", true)
			c.Next()
			return
		}

		user, ok := resolveBearer(c, authUsecase)
		if !ok {
			return
		}
		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

func resolveBearer(c *gin.Context, authUsecase usecase.AuthUsecase) (*authdomain.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
		c.Abort()
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		c.Abort()
		return nil, false
	}

	user, err := authUsecase.ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		c.Abort()
		return nil, false
	}
	return user, true
}
