package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"todo-server/internal/domain"
	"todo-server/internal/domain/user"
	"todo-server/internal/infrastructure/auth"
	"todo-server/internal/interfaces/httpserver/responses"
)

const principalContextKey = "principal"

// AuthMiddleware validates bearer tokens and resolves the caller into a
// principal stored on the gin context.
func AuthMiddleware(tokens *auth.TokenService, users *user.Service, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			responses.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			logger.Warn().Err(err).Str("path", c.FullPath()).Msg("token validation failed")
			responses.Error(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}

		u, err := users.GetByPublicID(c.Request.Context(), claims.Subject)
		if err != nil {
			responses.Error(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}

		setPrincipal(c, domain.Principal{
			UserID:   u.ID,
			PublicID: u.PublicID,
			Email:    u.Email,
		})
		c.Next()
	}
}

// PathOwnership rejects requests whose :user_id path segment does not match
// the authenticated principal.
func PathOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			responses.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		if c.Param("user_id") != principal.PublicID {
			responses.Error(c, http.StatusForbidden, "forbidden", "Not authorized to access this user's resources")
			return
		}
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok
}

func setPrincipal(c *gin.Context, principal domain.Principal) {
	c.Set(principalContextKey, principal)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
