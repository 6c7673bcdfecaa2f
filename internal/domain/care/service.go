package care

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-health-tracker/internal/domain/care/details"
	"pet-health-tracker/internal/platform/dateutil"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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
	Kind             Kind
	Name             string
	Date             time.Time
	RecurrenceMonths *int
	Mandatory        bool
	Custom           bool
	Product          string

	Treatment *details.Regimen
	Weight    *details.Measurement
}

func (s *Service) Create(ctx context.Context, animalID string, in CreateInput) (Event, error) {
	if strings.TrimSpace(animalID) == "" {
		return Event{}, ErrInvalidInput
	}
	if !IsValidKind(in.Kind) {
		return Event{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Event{}, ErrInvalidInput
	}

	switch in.Kind {
	case KindVaccine:
		if strings.TrimSpace(in.Name) == "" {
			return Event{}, ErrInvalidInput
		}
		// Un override de recurrencia negativo o cero no tiene sentido;
		// lo descartamos y dejamos que mande el catálogo.
		if in.RecurrenceMonths != nil && *in.RecurrenceMonths <= 0 {
			in.RecurrenceMonths = nil
		}
	case KindTreatment:
		if in.Treatment == nil || strings.TrimSpace(in.Name) == "" {
			return Event{}, ErrInvalidInput
		}
		if in.Treatment.End.Before(in.Treatment.Start) {
			return Event{}, ErrInvalidInput
		}
		for _, hhmm := range in.Treatment.Times {
			if !dateutil.IsValidHHMM(hhmm) {
				return Event{}, ErrInvalidInput
			}
		}
	case KindWeight:
		if in.Weight == nil || in.Weight.Value <= 0 {
			return Event{}, ErrInvalidInput
		}
		if in.Weight.Unit == "" {
			in.Weight.Unit = "kg"
		}
	}

	// Solo las vacunas llevan nombre de obligación / override de recurrencia.
	if in.Kind != KindVaccine && in.Kind != KindTreatment {
		in.Name = ""
	}
	if in.Kind != KindVaccine {
		in.RecurrenceMonths = nil
		in.Mandatory = false
		in.Custom = false
	}

	e := Event{
		ID:               uuid.NewString(),
		AnimalID:         animalID,
		Kind:             in.Kind,
		Name:             strings.TrimSpace(in.Name),
		Date:             in.Date,
		RecurrenceMonths: in.RecurrenceMonths,
		Mandatory:        in.Mandatory,
		Custom:           in.Custom,
		Product:          strings.TrimSpace(in.Product),
		RecordedAt:       s.now(),
		Treatment:        in.Treatment,
		Weight:           in.Weight,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string, filter ListFilter) ([]Event, error) {
	return s.repo.ListByAnimal(ctx, animalID, filter)
}
