package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"publishing-backend/internal/infrastructure/cache"
	"publishing-backend/internal/shared/identity"
	"publishing-backend/internal/shared/response"
	"publishing-backend/pkg/jwt"
)

const principalKey = "principal"

// DenylistKey is the redis key marking a revoked access token.
func DenylistKey(token string) string {
	return fmt.Sprintf("auth:denylist:%s", token)
}

// Auth requires a valid bearer token and places the resolved
// Principal into the gin context.
func Auth(manager *jwt.Manager, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := resolvePrincipal(c, manager, store)
		if !ok {
			c.Abort()
			return
		}
		if principal.Anonymous {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// OptionalAuth resolves a Principal when a credential is present and
// falls back to the anonymous caller otherwise. Used on public read paths.
func OptionalAuth(manager *jwt.Manager, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := resolvePrincipal(c, manager, store)
		if !ok {
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequirePrivileged rejects callers without ADMIN/SUPERADMIN.
// Must run after Auth.
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		if !principal.Privileged() {
			response.Forbidden(c, "access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the caller set by Auth/OptionalAuth,
// or the anonymous caller when neither ran.
func PrincipalFrom(c *gin.Context) identity.Principal {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(identity.Principal); ok {
			return p
		}
	}
	return identity.AnonymousPrincipal()
}

// resolvePrincipal parses the Authorization header into a Principal.
// Returns ok=false only when an error response has been written.
func resolvePrincipal(c *gin.Context, manager *jwt.Manager, store cache.Store) (identity.Principal, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return identity.AnonymousPrincipal(), true
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Error(c, http.StatusUnauthorized, "invalid authorization header format")
		return identity.Principal{}, false
	}
	token := parts[1]

	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "invalid token")
		return identity.Principal{}, false
	}

	// Tokens revoked by logout sit in the redis denylist until expiry.
	if store != nil {
		revoked, err := store.Exists(c.Request.Context(), DenylistKey(token))
		if err != nil {
			log.Warn().Err(err).Msg("Token denylist check failed")
		} else if revoked {
			response.Error(c, http.StatusUnauthorized, "token revoked")
			return identity.Principal{}, false
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "invalid user ID in token")
		return identity.Principal{}, false
	}

	return identity.Principal{
		UserID: userID,
		Roles:  identity.ParseRoles(claims.Roles),
	}, true
}
