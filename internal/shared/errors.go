package shared

import "errors"

// Resource errors.
var (
	// ErrValidation indicates a bad or missing request field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates a referenced id is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a duplicate role or a missing role on removal.
	ErrConflict = errors.New("conflict")
)

// Authentication and authorization errors.
var (
	// ErrMissingAuthHeader occurs when the Authorization header is absent.
	ErrMissingAuthHeader = errors.New("authorization header is expected")
	// ErrMalformedAuthHeader occurs when the header is not a single bearer token.
	ErrMalformedAuthHeader = errors.New("authorization header must be a bearer token")
	// ErrMalformedToken occurs when the token cannot be parsed or no signing key matches.
	ErrMalformedToken = errors.New("authorization token malformed")
	// ErrTokenExpired occurs when the token expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenUnreadable covers all other token decode failures.
	ErrTokenUnreadable = errors.New("unable to parse authentication token")
	// ErrClaimsInvalid occurs on audience or issuer mismatch.
	ErrClaimsInvalid = errors.New("incorrect claims, check the audience and issuer")
	// ErrPermissionsMissing occurs when a verified token carries no permissions claim.
	ErrPermissionsMissing = errors.New("permissions expected in token payload")
	// ErrForbidden occurs when the required permission is not granted.
	ErrForbidden = errors.New("permission is not included in list of permissions")
)

// Key resolution errors.
var (
	// ErrKeyNotFound occurs when no published key matches the token key id.
	ErrKeyNotFound = errors.New("unable to find the appropriate signing key")
	// ErrKeySetUnavailable occurs when the key-set endpoint is unreachable or malformed.
	ErrKeySetUnavailable = errors.New("signing key set unavailable")
)
