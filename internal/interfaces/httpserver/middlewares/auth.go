package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"freightdesk/services/support-api/internal/domain"
	"freightdesk/services/support-api/internal/domain/user"
	authvalidator "freightdesk/services/support-api/internal/infrastructure/auth"
	"freightdesk/services/support-api/internal/infrastructure/metrics"
	"freightdesk/services/support-api/internal/interfaces/httpserver/responses"
)

const principalContextKey = "principal"

// AuthMiddleware validates bearer tokens and materializes the local
// user record for the caller. The principal ID is always the local
// public id, not the raw token subject.
func AuthMiddleware(validator *authvalidator.JWTValidator, users *user.Service, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromBearer(c, validator)
		if err != nil {
			if errors.Is(err, errNoToken) {
				logger.Warn().
					Str("path", c.FullPath()).
					Str("method", c.Request.Method).
					Msg("unauthenticated request")
				metrics.AuthRequestsTotal.WithLabelValues("jwt", "missing").Inc()
				responses.HandleErrorWithStatus(c, http.StatusUnauthorized, err, "authentication required")
				return
			}
			logger.Error().Err(err).Msg("jwt validation failed")
			metrics.AuthRequestsTotal.WithLabelValues("jwt", "invalid").Inc()
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, err, "unauthorized")
			return
		}

		localUser, err := users.EnsureUser(c.Request.Context(), user.Identity{
			Issuer:    claims.Issuer,
			Subject:   claims.Subject,
			FirstName: firstNamePart(claims.Name),
			LastName:  lastNamePart(claims.Name),
			Email:     claims.Email,
			Role:      user.Role(claims.Role),
		})
		if err != nil {
			logger.Error().Err(err).Str("subject", claims.Subject).Msg("failed to materialize user")
			responses.HandleError(c, err)
			return
		}

		metrics.AuthRequestsTotal.WithLabelValues("jwt", "ok").Inc()
		setPrincipal(c, domain.Principal{
			ID:         localUser.PublicID,
			AuthMethod: domain.AuthMethodJWT,
			Subject:    claims.Subject,
			Issuer:     claims.Issuer,
			Role:       domain.Role(localUser.Role),
			Email:      localUser.Email,
			Name:       localUser.Name(),
			Scopes:     claims.Scopes,
		})
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
	c.Set("user_id", principal.ID)
	c.Set("user_email", principal.Email)
	c.Writer.Header().Set("X-Principal-Id", principal.ID)
	c.Writer.Header().Set("X-Auth-Method", string(principal.AuthMethod))
}

var errNoToken = errors.New("no bearer token")

func claimsFromBearer(c *gin.Context, validator *authvalidator.JWTValidator) (*authvalidator.TokenClaims, error) {
	if validator == nil {
		return nil, errNoToken
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errNoToken
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errNoToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return nil, errNoToken
	}
	return validator.Validate(c.Request.Context(), token)
}

func firstNamePart(full string) string {
	full = strings.TrimSpace(full)
	if full == "" {
		return ""
	}
	parts := strings.Fields(full)
	return parts[0]
}

func lastNamePart(full string) string {
	full = strings.TrimSpace(full)
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], " ")
}
