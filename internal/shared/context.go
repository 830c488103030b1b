package shared

import "context"

type claimsContextKey struct{}

// Claims carries the verified assertions decoded from a bearer token.
type Claims struct {
	Subject     string
	Issuer      string
	Audience    []string
	Permissions []string
}

// ContextWithClaims stores the verified claims in context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts the verified claims from context.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*Claims)
	return claims
}
