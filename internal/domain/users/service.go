package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pet-health-tracker/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("user not found")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

type Service struct {
	repo   Repository
	signer auth.TokenSigner

	// now permite fijar el reloj en tests.
	now func() time.Time
}

func NewService(repo Repository, signer auth.TokenSigner) *Service {
	return &Service{repo: repo, signer: signer, now: time.Now}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register crea la cuenta y devuelve el usuario junto con un token ya emitido.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" {
		return User{}, "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !emailRe.MatchString(email) {
		return User{}, "", fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return User{}, "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", fmt.Errorf("hashing password: %w", err)
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, "", ErrEmailTaken
		}
		return User{}, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.signer.Sign(ctx, auth.Claims{UserID: u.ID, Email: u.Email})
	if err != nil {
		return User{}, "", fmt.Errorf("signing token: %w", err)
	}
	return u, token, nil
}

// Login valida credenciales y emite un token. No distingue entre email
// desconocido y contraseña incorrecta.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.signer.Sign(ctx, auth.Claims{UserID: u.ID, Email: u.Email})
	if err != nil {
		return User{}, "", fmt.Errorf("signing token: %w", err)
	}
	return u, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}
