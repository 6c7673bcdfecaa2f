package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-health-tracker/internal/platform/dateutil"
	"pet-health-tracker/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("appointment not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo      Repository
	scheduler notify.Scheduler

	// now permite fijar el reloj en tests.
	now func() time.Time
}

func NewService(repo Repository, scheduler notify.Scheduler) *Service {
	return &Service{repo: repo, scheduler: scheduler, now: time.Now}
}

type CreateInput struct {
	Date      time.Time
	TimeHHMM  string
	Place     string
	AnimalIDs []string
	Reminders []ReminderChoice
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Appointment, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Appointment{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return Appointment{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	hhmm := strings.TrimSpace(in.TimeHHMM)
	if hhmm != "" && !dateutil.IsValidHHMM(hhmm) {
		return Appointment{}, fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}
	if len(in.AnimalIDs) == 0 {
		return Appointment{}, fmt.Errorf("%w: at least one animal is required", ErrInvalidInput)
	}
	for _, c := range in.Reminders {
		if !IsValidReminderOption(c.Option) {
			return Appointment{}, fmt.Errorf("%w: unknown reminder option %q", ErrInvalidInput, c.Option)
		}
		if c.Option == ReminderCustom && !dateutil.IsValidHHMM(strings.TrimSpace(c.CustomHHMM)) {
			return Appointment{}, fmt.Errorf("%w: custom reminder lead must be HH:MM", ErrInvalidInput)
		}
	}

	choices := in.Reminders
	if len(choices) == 0 {
		choices = DefaultReminders()
	}

	now := s.now()
	a := Appointment{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Date:        in.Date,
		TimeHHMM:    hhmm,
		Place:       strings.TrimSpace(in.Place),
		AnimalIDs:   append([]string(nil), in.AnimalIDs...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Se programan solo los disparos que siguen en el futuro; una cita
	// para dentro de una hora no genera el recordatorio de la víspera.
	for _, trigger := range ReminderTimes(a, choices, now) {
		id, err := s.scheduler.Schedule(ctx, notify.Reminder{
			Title:     "Rendez-vous vétérinaire",
			Body:      reminderBody(a),
			TriggerAt: trigger,
		})
		if err != nil {
			return Appointment{}, fmt.Errorf("scheduling reminder: %w", err)
		}
		a.ReminderIDs = append(a.ReminderIDs, id)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, fmt.Errorf("creating appointment: %w", err)
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, ownerUserID, id string) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, ErrNotFound
	}
	if a.OwnerUserID != ownerUserID {
		return Appointment{}, ErrForbidden
	}
	return a, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Appointment, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Appointment, error) {
	return s.repo.ListByAnimal(ctx, animalID)
}

// Delete borra la cita y cancela sus recordatorios pendientes.
func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	a, err := s.GetByID(ctx, ownerUserID, id)
	if err != nil {
		return err
	}
	for _, rid := range a.ReminderIDs {
		if err := s.scheduler.Cancel(ctx, rid); err != nil {
			return fmt.Errorf("cancelling reminder %s: %w", rid, err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting appointment: %w", err)
	}
	return nil
}

func reminderBody(a Appointment) string {
	when := dateutil.FormatFrDate(a.Date)
	if a.TimeHHMM != "" {
		when += " à " + a.TimeHHMM
	}
	if a.Place != "" {
		return when + ", " + a.Place
	}
	return when
}
