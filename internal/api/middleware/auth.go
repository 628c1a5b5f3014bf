package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/api/permission"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// Actor returns the identity attached to the request, defaulting to the
// anonymous actor when nothing authenticated the call.
func Actor(c *gin.Context) permission.Actor {
	if v, exists := c.Get(actorKey); exists {
		if actor, ok := v.(permission.Actor); ok {
			return actor
		}
	}
	return permission.Anonymous
}

func actorFromClaims(claims *service.Claims) permission.Actor {
	return permission.Actor{
		ID:            claims.UserID,
		Username:      claims.Username,
		Role:          permission.Role(claims.Role),
		Staff:         claims.Staff,
		Authenticated: true,
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	// format: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth rejects requests without a valid bearer token and stores
// the resolved actor in the context.
func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication required"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid token"})
			c.Abort()
			return
		}

		c.Set(actorKey, actorFromClaims(claims))
		c.Next()
	}
}

// OptionalAuth resolves the actor when credentials are present but lets
// anonymous requests through; read endpoints are public.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := authService.ValidateToken(token); err == nil {
				c.Set(actorKey, actorFromClaims(claims))
			}
		}
		c.Next()
	}
}

// RequireAdmin is the route-level gate for catalog writes and user
// administration. Object-level checks run again inside the services.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Actor(c).IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"detail": "admin privilege required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
