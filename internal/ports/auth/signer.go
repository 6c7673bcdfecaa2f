package auth

import "context"

// TokenSigner emite un token para los claims dados.
type TokenSigner interface {
	Sign(ctx context.Context, claims Claims) (string, error)
}
