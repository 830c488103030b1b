package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/castboard/castboard/internal/shared"
)

// jwksPath is where the identity provider publishes its key set.
const jwksPath = "/.well-known/jwks.json"

// maxKeySetSize caps the accepted key-set document size (256 KB).
const maxKeySetSize = 256 << 10

type jwksDocument struct {
	Keys []jwksKey `json:"keys"`
}

type jwksKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKSClient resolves token signing keys from the identity provider's
// published key set. An optional Redis cache holds the raw document for a
// TTL; with no cache every resolution re-fetches.
type JWKSClient struct {
	endpoint string
	client   *http.Client
	cache    *redis.Client
	cacheKey string
	ttl      time.Duration
	logger   *slog.Logger
	group    singleflight.Group
}

// JWKSOption customises a JWKSClient.
type JWKSOption func(*JWKSClient)

// WithHTTPClient overrides the HTTP client used for key-set fetches.
func WithHTTPClient(client *http.Client) JWKSOption {
	return func(c *JWKSClient) { c.client = client }
}

// WithEndpoint overrides the key-set URL, bypassing the well-known path
// derived from the issuer domain.
func WithEndpoint(endpoint string) JWKSOption {
	return func(c *JWKSClient) { c.endpoint = endpoint }
}

// WithCache caches the raw key-set document in Redis for ttl. A zero ttl
// disables caching.
func WithCache(client *redis.Client, ttl time.Duration) JWKSOption {
	return func(c *JWKSClient) {
		if client != nil && ttl > 0 {
			c.cache = client
			c.ttl = ttl
		}
	}
}

// NewJWKSClient builds a resolver for the given issuer domain.
func NewJWKSClient(domain string, logger *slog.Logger, opts ...JWKSOption) *JWKSClient {
	c := &JWKSClient{
		endpoint: "https://" + domain + jwksPath,
		client:   &http.Client{Timeout: 10 * time.Second},
		cacheKey: "jwks:" + domain,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveSigningKey returns the RSA public key whose identifier equals kid.
func (c *JWKSClient) ResolveSigningKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	raw, err := c.keySet(ctx)
	if err != nil {
		return nil, err
	}

	var doc jwksDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrKeySetUnavailable, err)
	}

	for _, key := range doc.Keys {
		if key.Kid != kid || key.Kty != "RSA" {
			continue
		}
		pub, err := parseRSAPublicKey(key.N, key.E)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrKeySetUnavailable, err)
		}
		return pub, nil
	}
	return nil, shared.ErrKeyNotFound
}

// keySet returns the raw key-set document, consulting the cache first and
// collapsing concurrent fetches into one request.
func (c *JWKSClient) keySet(ctx context.Context) ([]byte, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, c.cacheKey).Bytes()
		if err == nil {
			return cached, nil
		}
		if err != redis.Nil && c.logger != nil {
			c.logger.Warn("jwks cache read", slog.Any("error", err))
		}
	}

	// The fetch is shared by every caller collapsed onto it, so it must not
	// die with the first caller's context. The HTTP client timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	raw, err, _ := c.group.Do(c.cacheKey, func() (any, error) {
		return c.fetch(fetchCtx)
	})
	if err != nil {
		return nil, err
	}
	body := raw.([]byte)

	if c.cache != nil {
		if err := c.cache.Set(ctx, c.cacheKey, body, c.ttl).Err(); err != nil && c.logger != nil {
			c.logger.Warn("jwks cache write", slog.Any("error", err))
		}
	}
	return body, nil
}

func (c *JWKSClient) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrKeySetUnavailable, err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrKeySetUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: key set endpoint returned %d", shared.ErrKeySetUnavailable, res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxKeySetSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrKeySetUnavailable, err)
	}
	return body, nil
}

// parseRSAPublicKey constructs an *rsa.PublicKey from base64url-encoded
// modulus and exponent.
func parseRSAPublicKey(nBase64, eBase64 string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(nBase64)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(eBase64)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}

	n := new(big.Int).SetBytes(nBytes)
	e := new(big.Int).SetBytes(eBytes)
	if !e.IsInt64() || e.Int64() <= 0 {
		return nil, fmt.Errorf("exponent out of range")
	}

	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}
