package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-health-tracker/internal/ports/notify"
)

type fakeRepo struct {
	items map[string]Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]Appointment{}}
}

func (f *fakeRepo) Create(_ context.Context, a Appointment) error {
	f.items[a.ID] = a
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return Appointment{}, errors.New("not found")
	}
	return a, nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, owner string) ([]Appointment, error) {
	var out []Appointment
	for _, a := range f.items {
		if a.OwnerUserID == owner {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByAnimal(_ context.Context, animalID string) ([]Appointment, error) {
	var out []Appointment
	for _, a := range f.items {
		for _, id := range a.AnimalIDs {
			if id == animalID {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

type fakeScheduler struct {
	scheduled map[string]notify.Reminder
	cancelled []string
	nextID    int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{scheduled: map[string]notify.Reminder{}}
}

func (f *fakeScheduler) Schedule(_ context.Context, r notify.Reminder) (string, error) {
	f.nextID++
	id := string(rune('a' + f.nextID - 1))
	f.scheduled[id] = r
	return id, nil
}

func (f *fakeScheduler) Cancel(_ context.Context, id string) error {
	delete(f.scheduled, id)
	f.cancelled = append(f.cancelled, id)
	return nil
}

func newTestService(now time.Time) (*Service, *fakeRepo, *fakeScheduler) {
	repo := newFakeRepo()
	sched := newFakeScheduler()
	svc := NewService(repo, sched)
	svc.now = func() time.Time { return now }
	return svc, repo, sched
}

func TestCreateAplicaRecordatoriosPorDefecto(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, repo, sched := newTestService(now)

	a, err := svc.Create(context.Background(), "user-1", CreateInput{
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		TimeHHMM:  "14:00",
		AnimalIDs: []string{"animal-1"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Víspera a las 20:00 y 2h antes, ambos en el futuro.
	if len(a.ReminderIDs) != 2 {
		t.Fatalf("got %d reminder IDs, quería 2", len(a.ReminderIDs))
	}
	if len(sched.scheduled) != 2 {
		t.Fatalf("scheduler tiene %d recordatorios, quería 2", len(sched.scheduled))
	}
	if _, err := repo.GetByID(context.Background(), a.ID); err != nil {
		t.Fatalf("la cita no quedó persistida: %v", err)
	}
}

func TestCreateDescartaDisparosPasados(t *testing.T) {
	// Cita dentro de una hora: del plan por defecto solo queda... nada
	// (víspera y 2h ya pasaron).
	now := time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC)
	svc, _, sched := newTestService(now)

	a, err := svc.Create(context.Background(), "user-1", CreateInput{
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		TimeHHMM:  "14:00",
		AnimalIDs: []string{"animal-1"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(a.ReminderIDs) != 0 || len(sched.scheduled) != 0 {
		t.Fatalf("got %d programados, quería 0", len(sched.scheduled))
	}
}

func TestCreateValida(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"sin fecha", CreateInput{AnimalIDs: []string{"a"}}},
		{"sin animales", CreateInput{Date: date}},
		{"hora inválida", CreateInput{Date: date, TimeHHMM: "25:99", AnimalIDs: []string{"a"}}},
		{"opción desconocida", CreateInput{Date: date, AnimalIDs: []string{"a"}, Reminders: []ReminderChoice{{Option: "3d"}}}},
		{"custom sin antelación", CreateInput{Date: date, AnimalIDs: []string{"a"}, Reminders: []ReminderChoice{{Option: ReminderCustom}}}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), "user-1", tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: err = %v, quería ErrInvalidInput", tc.name, err)
		}
	}
}

func TestDeleteCancelaRecordatorios(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, repo, sched := newTestService(now)

	a, err := svc.Create(context.Background(), "user-1", CreateInput{
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		TimeHHMM:  "14:00",
		AnimalIDs: []string{"animal-1"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-1", a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(sched.scheduled) != 0 {
		t.Fatalf("quedaron %d recordatorios sin cancelar", len(sched.scheduled))
	}
	if len(sched.cancelled) != 2 {
		t.Fatalf("got %d cancelaciones, quería 2", len(sched.cancelled))
	}
	if _, err := repo.GetByID(context.Background(), a.ID); err == nil {
		t.Fatal("la cita sigue en el repositorio tras Delete")
	}
}

func TestDeleteAjeno(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	a, err := svc.Create(context.Background(), "user-1", CreateInput{
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		AnimalIDs: []string{"animal-1"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-2", a.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Delete ajeno: err = %v, quería ErrForbidden", err)
	}
}
