// Package auth verifies bearer tokens issued by the external identity
// provider and gates handlers on permission strings.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/castboard/castboard/internal/shared"
)

// Claims is the typed claim set decoded from a verified bearer token. The
// permissions field stays nil when the provider omitted it, which is distinct
// from an empty grant list.
type Claims struct {
	jwt.RegisteredClaims
	Permissions []string `json:"permissions"`
}

// Shared converts the claim set into the transport-neutral form stored in
// request context.
func (c *Claims) Shared() *shared.Claims {
	return &shared.Claims{
		Subject:     c.Subject,
		Issuer:      c.Issuer,
		Audience:    c.Audience,
		Permissions: c.Permissions,
	}
}
