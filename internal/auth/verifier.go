package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/castboard/castboard/internal/shared"
)

// KeyResolver finds the signing key matching a token key identifier.
type KeyResolver interface {
	ResolveSigningKey(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// Verifier validates bearer tokens: RS256 signature against the resolved
// key, audience, issuer, and expiry.
type Verifier struct {
	resolver KeyResolver
	parser   *jwt.Parser
}

// NewVerifier builds a Verifier for the configured audience and issuer
// domain. Only RS256 tokens are accepted.
func NewVerifier(resolver KeyResolver, audience, domain string) *Verifier {
	return &Verifier{
		resolver: resolver,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithAudience(audience),
			jwt.WithIssuer("https://"+domain+"/"),
		),
	}
}

// Verify checks the token and returns its claim set.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, shared.ErrMalformedToken
		}
		key, err := v.resolver.ResolveSigningKey(ctx, kid)
		if err != nil {
			if errors.Is(err, shared.ErrKeyNotFound) {
				return nil, fmt.Errorf("%w: no key matches token", shared.ErrMalformedToken)
			}
			return nil, err
		}
		return key, nil
	})
	if err != nil {
		return nil, mapTokenError(err)
	}
	return claims, nil
}

// mapTokenError translates jwt library failures into the error taxonomy.
// Sentinels raised from the keyfunc pass through unchanged.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, shared.ErrMalformedToken),
		errors.Is(err, shared.ErrKeySetUnavailable):
		return err
	case errors.Is(err, jwt.ErrTokenExpired):
		return shared.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return shared.ErrClaimsInvalid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", shared.ErrMalformedToken, err)
	default:
		return shared.ErrTokenUnreadable
	}
}
