package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/reviewhub/reviews-backend/internal/config"
	"github.com/reviewhub/reviews-backend/internal/models"
	"github.com/reviewhub/reviews-backend/internal/utils"
)

const identityKey = "identity"

// RequireAuth rejects requests without a valid bearer token and stores
// the decoded identity on the context.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromHeader(c, cfg)
		if !ok {
			utils.SendUnauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth decodes a bearer token when one is presented but lets
// anonymous requests through. Used on the review submission route,
// where anonymous authorship is a policy decision, not a transport one.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, ok := identityFromHeader(c, cfg); ok {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// AdminOnly must run after RequireAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := Identity(c)
		if !identity.IsAdmin() {
			utils.SendForbidden(c, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Identity returns the authenticated principal for the request, or nil
// for an anonymous visitor.
func Identity(c *gin.Context) *models.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(*models.Identity); ok {
			return identity
		}
	}
	return nil
}

func identityFromHeader(c *gin.Context, cfg *config.Config) (*models.Identity, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, false
	}

	claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
	if err != nil {
		return nil, false
	}

	return &models.Identity{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   claims.Role,
	}, true
}
