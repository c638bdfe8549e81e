// Package oidc verifies bearer tokens issued by the configured OpenID
// Connect provider. The provider itself (issuer, client id, JWKS endpoint)
// comes from configuration; this service only consumes it.
package oidc

import (
	"context"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/mvaldes/digital-toolkit/internal/models"
)

// Verifier validates JWT access tokens against the provider's JWKS,
// refreshing keys in the background.
type Verifier struct {
	cache   *jwk.Cache
	issuer  string
	jwksURL string
}

// NewVerifier creates a verifier with a self-refreshing JWKS cache. The
// context bounds the lifetime of the background refresher.
func NewVerifier(ctx context.Context, issuer, jwksURL string) (*Verifier, error) {
	if issuer == "" || jwksURL == "" {
		return nil, fmt.Errorf("oidc issuer and JWKS URL are required")
	}

	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
		return nil, fmt.Errorf("failed to register JWKS endpoint: %w", err)
	}

	return &Verifier{
		cache:   cache,
		issuer:  issuer,
		jwksURL: jwksURL,
	}, nil
}

// Verify parses and validates a token and extracts the claims the rest of
// the service cares about.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	keys, err := v.cache.Get(ctx, v.jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get JWKS: %w", err)
	}

	token, err := jwt.Parse([]byte(tokenString),
		jwt.WithKeySet(keys),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse/verify token: %w", err)
	}

	claims := &models.JWTClaims{
		Sub: token.Subject(),
		Iss: token.Issuer(),
	}

	if len(token.Audience()) > 0 {
		claims.Aud = token.Audience()[0]
	}
	if !token.Expiration().IsZero() {
		claims.Exp = token.Expiration().Unix()
	}
	if !token.IssuedAt().IsZero() {
		claims.Iat = token.IssuedAt().Unix()
	}

	if email, ok := token.Get("email"); ok {
		if emailStr, ok := email.(string); ok {
			claims.Email = emailStr
		}
	}
	if name, ok := token.Get("name"); ok {
		if nameStr, ok := name.(string); ok {
			claims.Name = nameStr
		}
	}

	return claims, nil
}
