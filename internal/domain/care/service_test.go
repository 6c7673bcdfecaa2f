package care

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-health-tracker/internal/domain/care/details"
)

type fakeRepo struct {
	created []Event
}

func (f *fakeRepo) Create(_ context.Context, e Event) error {
	f.created = append(f.created, e)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (Event, error) {
	for _, e := range f.created {
		if e.ID == id {
			return e, nil
		}
	}
	return Event{}, errors.New("not found")
}

func (f *fakeRepo) ListByAnimal(_ context.Context, animalID string, _ ListFilter) ([]Event, error) {
	var out []Event
	for _, e := range f.created {
		if e.AnimalID == animalID {
			out = append(out, e)
		}
	}
	return out, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCreateVacuna(t *testing.T) {
	svc, _ := newTestService()
	months := 36

	e, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Kind:             KindVaccine,
		Name:             "  Rage  ",
		Date:             time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		RecurrenceMonths: &months,
		Mandatory:        true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID == "" || e.Name != "Rage" || !e.Mandatory {
		t.Fatalf("evento: %+v", e)
	}
	if e.RecurrenceMonths == nil || *e.RecurrenceMonths != 36 {
		t.Fatalf("recurrence = %v", e.RecurrenceMonths)
	}
	if e.RecordedAt.IsZero() {
		t.Fatal("RecordedAt vacío")
	}
}

func TestCreateVacunaDescartaOverrideInvalido(t *testing.T) {
	svc, _ := newTestService()
	zero := 0

	e, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Kind:             KindVaccine,
		Name:             "Rage",
		Date:             time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		RecurrenceMonths: &zero,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.RecurrenceMonths != nil {
		t.Fatalf("override <= 0 debió descartarse, quedó %v", *e.RecurrenceMonths)
	}
}

func TestCreateLimpiaCamposDeVacunaEnOtrosKinds(t *testing.T) {
	svc, _ := newTestService()
	months := 6

	e, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Kind:             KindAntiparasitic,
		Name:             "no debería quedar",
		Date:             time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		RecurrenceMonths: &months,
		Mandatory:        true,
		Custom:           true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Name != "" || e.RecurrenceMonths != nil || e.Mandatory || e.Custom {
		t.Fatalf("campos de vacuna sin limpiar: %+v", e)
	}
}

func TestCreateTratamiento(t *testing.T) {
	svc, _ := newTestService()
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	reg := &details.Regimen{
		DoseValue:   1,
		DoseUnit:    details.DoseUnitTablet,
		DosesPerDay: 2,
		Start:       start,
		End:         start.AddDate(0, 0, 7),
		Times:       []string{"08:00", "20:00"},
	}
	if _, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Kind:      KindTreatment,
		Name:      "Antibiotique",
		Date:      start,
		Treatment: reg,
	}); err != nil {
		t.Fatalf("Create tratamiento: %v", err)
	}

	// Horario inválido
	bad := *reg
	bad.Times = []string{"8h00"}
	if _, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Kind:      KindTreatment,
		Name:      "Antibiotique",
		Date:      start,
		Treatment: &bad,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("horario inválido: err = %v", err)
	}

	// Fin antes del inicio
	bad = *reg
	bad.End = start.AddDate(0, 0, -1)
	if _, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Kind:      KindTreatment,
		Name:      "Antibiotique",
		Date:      start,
		Treatment: &bad,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("end < start: err = %v", err)
	}
}

func TestCreatePesada(t *testing.T) {
	svc, _ := newTestService()
	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	e, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Kind:   KindWeight,
		Date:   date,
		Weight: &details.Measurement{Value: 4.2},
	})
	if err != nil {
		t.Fatalf("Create pesada: %v", err)
	}
	if e.Weight.Unit != "kg" {
		t.Fatalf("unidad por defecto = %q", e.Weight.Unit)
	}

	if _, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Kind:   KindWeight,
		Date:   date,
		Weight: &details.Measurement{Value: 0},
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("peso cero: err = %v", err)
	}
}

func TestCreateValidaBasicos(t *testing.T) {
	svc, _ := newTestService()
	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		animalID string
		in       CreateInput
	}{
		{"sin animal", "", CreateInput{Kind: KindDewormer, Date: date}},
		{"kind inválido", "a", CreateInput{Kind: "SURGERY", Date: date}},
		{"sin fecha", "a", CreateInput{Kind: KindDewormer}},
		{"vacuna sin nombre", "a", CreateInput{Kind: KindVaccine, Date: date}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.animalID, tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: err = %v, quería ErrInvalidInput", tc.name, err)
		}
	}
}
