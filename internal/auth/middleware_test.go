package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castboard/castboard/internal/auth"
	"github.com/castboard/castboard/internal/platform/httpx"
	"github.com/castboard/castboard/internal/shared"
)

type stubVerifier struct {
	claims *auth.Claims
	err    error
}

func (v stubVerifier) Verify(ctx context.Context, raw string) (*auth.Claims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func grantedClaims(permissions []string) *auth.Claims {
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "auth0|user-1"},
		Permissions:      permissions,
	}
}

func runGate(t *testing.T, verifier auth.TokenVerifier, permission, header string) *httptest.ResponseRecorder {
	t.Helper()
	mw := auth.Middleware{Verifier: verifier}

	var handlerClaims *shared.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerClaims = shared.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/actors", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	res := httptest.NewRecorder()
	mw.Require(permission)(next).ServeHTTP(res, req)

	if res.Code == http.StatusOK {
		require.NotNil(t, handlerClaims, "claims must reach the handler context")
	}
	return res
}

func decodeEnvelope(t *testing.T, res *httptest.ResponseRecorder) httpx.ErrorEnvelope {
	t.Helper()
	var envelope httpx.ErrorEnvelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	return envelope
}

func TestRequireMissingHeader(t *testing.T) {
	res := runGate(t, stubVerifier{claims: grantedClaims(nil)}, "read:actors", "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	envelope := decodeEnvelope(t, res)
	assert.False(t, envelope.Success)
	assert.Equal(t, http.StatusUnauthorized, envelope.Status)
}

func TestRequireBasicScheme(t *testing.T) {
	res := runGate(t, stubVerifier{claims: grantedClaims([]string{"read:actors"})}, "read:actors", "Basic xyz")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRequireBearerWithoutToken(t *testing.T) {
	res := runGate(t, stubVerifier{claims: grantedClaims([]string{"read:actors"})}, "read:actors", "Bearer")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRequireBearerExtraParts(t *testing.T) {
	res := runGate(t, stubVerifier{claims: grantedClaims([]string{"read:actors"})}, "read:actors", "Bearer one two")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRequireSchemeCaseInsensitive(t *testing.T) {
	res := runGate(t, stubVerifier{claims: grantedClaims([]string{"read:actors"})}, "read:actors", "bearer token")
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestRequireVerifierFailure(t *testing.T) {
	res := runGate(t, stubVerifier{err: shared.ErrTokenExpired}, "read:actors", "Bearer token")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRequireGranted(t *testing.T) {
	res := runGate(t, stubVerifier{claims: grantedClaims([]string{"read:actors", "read:movies"})}, "read:actors", "Bearer token")
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestRequireExactMatchOnly(t *testing.T) {
	res := runGate(t, stubVerifier{claims: grantedClaims([]string{"read:movies"})}, "read:actors", "Bearer token")
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestRequirePermissionsMissing(t *testing.T) {
	res := runGate(t, stubVerifier{claims: grantedClaims(nil)}, "read:actors", "Bearer token")
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestRequirePublicOperation(t *testing.T) {
	res := runGate(t, stubVerifier{claims: grantedClaims(nil)}, "", "Bearer token")
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestCheckPermission(t *testing.T) {
	assert.NoError(t, auth.CheckPermission("", grantedClaims(nil)))
	assert.NoError(t, auth.CheckPermission("read:actors", grantedClaims([]string{"read:actors"})))

	err := auth.CheckPermission("read:actors", grantedClaims(nil))
	assert.ErrorIs(t, err, shared.ErrPermissionsMissing)

	err = auth.CheckPermission("read:actors", grantedClaims([]string{}))
	assert.ErrorIs(t, err, shared.ErrForbidden)

	err = auth.CheckPermission("read:actors", grantedClaims([]string{"read:movies"}))
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := auth.BearerToken(req)
	assert.ErrorIs(t, err, shared.ErrMissingAuthHeader)

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, err := auth.BearerToken(req)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	req.Header.Set("Authorization", "Basic abc")
	_, err = auth.BearerToken(req)
	assert.ErrorIs(t, err, shared.ErrMalformedAuthHeader)
}
