package users

import (
	"context"
	"errors"
)

// ErrEmailTaken lo devuelve Create cuando el email ya está registrado.
var ErrEmailTaken = errors.New("email already registered")

// Repository persiste cuentas de usuario.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
