// Package jwtauth implementa los puertos de auth con tokens JWT firmados
// localmente (HS256). No hay IAM externo: el propio servicio emite y
// verifica sus tokens de sesión.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-health-tracker/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token is invalid")
)

const defaultTTL = 24 * time.Hour

// Provider firma y verifica tokens con un secreto compartido.
// Implementa auth.TokenSigner y auth.AuthVerifier.
type Provider struct {
	secret []byte
	ttl    time.Duration

	// now permite fijar el reloj en tests.
	now func() time.Time
}

func NewProvider(secret string) *Provider {
	return &Provider{secret: []byte(secret), ttl: defaultTTL, now: time.Now}
}

func (p *Provider) Sign(_ context.Context, claims auth.Claims) (string, error) {
	now := p.now()
	mc := jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(p.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return token, nil
}

func (p *Provider) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, ErrTokenInvalid
	}
	sub, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	if strings.TrimSpace(sub) == "" {
		return auth.Claims{}, ErrTokenInvalid
	}

	return auth.Claims{UserID: sub, Email: email}, nil
}
