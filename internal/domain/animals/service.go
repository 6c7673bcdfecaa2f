package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name       string
	Species    string
	Breed      string
	Sex        string
	BirthDate  time.Time
	Sterilized bool
	Microchip  string
	Notes      string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Animal, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Animal{}, ErrInvalidInput
	}
	if in.BirthDate.IsZero() {
		return Animal{}, ErrInvalidInput
	}

	now := s.now()
	bd := in.BirthDate
	a := Animal{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Breed:       strings.TrimSpace(in.Breed),
		Sex:         parseSex(in.Sex),
		BirthDate:   &bd,
		Sterilized:  in.Sterilized,
		Microchip:   strings.TrimSpace(in.Microchip),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// UpdateProfileInput usa punteros para PATCH real: nil = no tocar.
// La fecha de nacimiento no aparece aquí a propósito: es inmutable
// (todos los protocolos de edad dependen de ella).
type UpdateProfileInput struct {
	Name       *string
	Breed      *string
	Sex        *string
	Sterilized *bool
	Microchip  *string
	PhotoURL   *string
	Notes      *string
}

func (s *Service) UpdateProfile(ctx context.Context, id, userID string, in UpdateProfileInput) (Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, ErrNotFound
	}
	if a.OwnerUserID != userID {
		return Animal{}, ErrForbidden
	}

	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return Animal{}, ErrInvalidInput
		}
		a.Name = n
	}
	if in.Breed != nil {
		a.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		a.Sex = parseSex(*in.Sex)
	}
	if in.Sterilized != nil {
		a.Sterilized = *in.Sterilized
	}
	if in.Microchip != nil {
		a.Microchip = strings.TrimSpace(*in.Microchip)
	}
	if in.PhotoURL != nil {
		a.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Animal, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if a.OwnerUserID != userID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func parseSex(s string) Sex {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale
	case SexFemale:
		return SexFemale
	default:
		return SexUnknown
	}
}
