package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/castboard/castboard/internal/platform/httpx"
	"github.com/castboard/castboard/internal/shared"
)

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*Claims, error)
}

// Middleware gates handlers behind bearer-token verification and a required
// permission string.
type Middleware struct {
	Verifier TokenVerifier
	Logger   *slog.Logger
}

// Require verifies the request's bearer token and checks the permission.
// An empty permission still requires a valid token but skips the grant check.
func (m Middleware) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				httpx.RespondError(w, err)
				return
			}

			claims, err := m.Verifier.Verify(r.Context(), token)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Warn("token verification failed", slog.Any("error", err))
				}
				httpx.RespondError(w, err)
				return
			}

			if err := CheckPermission(permission, claims); err != nil {
				httpx.RespondError(w, err)
				return
			}

			ctx := shared.ContextWithClaims(r.Context(), claims.Shared())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the raw token from the Authorization header. The
// scheme must be the literal Bearer (case-insensitive) followed by exactly
// one token value.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", shared.ErrMissingAuthHeader
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", shared.ErrMalformedAuthHeader
	}
	return parts[1], nil
}

// CheckPermission decides allow/deny for a required permission against a
// verified claim set. Permissions compare by exact equality, no wildcards.
func CheckPermission(required string, claims *Claims) error {
	if required == "" {
		return nil
	}
	if claims == nil || claims.Permissions == nil {
		return shared.ErrPermissionsMissing
	}
	for _, granted := range claims.Permissions {
		if granted == required {
			return nil
		}
	}
	return shared.ErrForbidden
}
