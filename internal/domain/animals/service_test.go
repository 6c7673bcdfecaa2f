package animals

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	byID map[string]Animal
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]Animal{}}
}

func (f *fakeRepo) Create(_ context.Context, a Animal) error {
	f.byID[a.ID] = a
	return nil
}

func (f *fakeRepo) Update(_ context.Context, a Animal) error {
	if _, ok := f.byID[a.ID]; !ok {
		return errors.New("not found")
	}
	f.byID[a.ID] = a
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (Animal, error) {
	a, ok := f.byID[id]
	if !ok {
		return Animal{}, errors.New("not found")
	}
	return a, nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, owner string) ([]Animal, error) {
	var out []Animal
	for _, a := range f.byID {
		if a.OwnerUserID == owner {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func str(s string) *string { return &s }

func TestCreateYActualizarPerfil(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, "user-1", CreateInput{
		Name:      "  Plume ",
		Species:   "chat",
		Sex:       "FEMALE",
		BirthDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Name != "Plume" || a.Sex != SexFemale {
		t.Fatalf("animal: %+v", a)
	}

	got, err := svc.UpdateProfile(ctx, a.ID, "user-1", UpdateProfileInput{
		Name:  str("Plumette"),
		Notes: str("allergie aux acariens"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Name != "Plumette" || got.Notes != "allergie aux acariens" {
		t.Fatalf("tras patch: %+v", got)
	}
	// Los campos no enviados no se tocan
	if got.Species != "chat" || got.Sex != SexFemale {
		t.Fatalf("campos ajenos al patch modificados: %+v", got)
	}
	// La fecha de nacimiento sobrevive intacta a cualquier update
	if got.BirthDate == nil || !got.BirthDate.Equal(*a.BirthDate) {
		t.Fatalf("birth date cambió: %v -> %v", a.BirthDate, got.BirthDate)
	}
}

func TestCreateValida(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	birth := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		owner string
		in    CreateInput
	}{
		{"sin dueño", "", CreateInput{Name: "P", Species: "chat", BirthDate: birth}},
		{"sin nombre", "u", CreateInput{Species: "chat", BirthDate: birth}},
		{"sin especie", "u", CreateInput{Name: "P", BirthDate: birth}},
		{"sin nacimiento", "u", CreateInput{Name: "P", Species: "chat"}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.owner, tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: err = %v, quería ErrInvalidInput", tc.name, err)
		}
	}
}

func TestBreedsFor(t *testing.T) {
	// Case-insensitive y con espacios alrededor.
	if got := BreedsFor("  Chat "); len(got) != len(CatBreeds) {
		t.Fatalf("chat: got %d razas, quería %d", len(got), len(CatBreeds))
	}
	if got := BreedsFor("CHIEN"); len(got) != len(DogBreeds) {
		t.Fatalf("chien: got %d razas, quería %d", len(got), len(DogBreeds))
	}

	// Especie libre: lista vacía, nunca nil (el handler serializa []).
	if got := BreedsFor("lapin"); got == nil || len(got) != 0 {
		t.Fatalf("lapin: got %v, quería lista vacía", got)
	}

	// Devuelve una copia: mutar el resultado no toca el catálogo.
	got := BreedsFor("chat")
	got[0] = "mutada"
	if CatBreeds[0] == "mutada" {
		t.Fatal("BreedsFor expone el slice interno")
	}
}

func TestSoloElDuenoModifica(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, "user-1", CreateInput{
		Name:      "Milo",
		Species:   "chien",
		BirthDate: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, a.ID, "user-2", UpdateProfileInput{Name: str("X")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("update ajeno: err = %v", err)
	}
	if err := svc.Delete(ctx, a.ID, "user-2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete ajeno: err = %v", err)
	}
	if _, ok := repo.byID[a.ID]; !ok {
		t.Fatal("el animal desapareció")
	}

	if err := svc.Delete(ctx, a.ID, "user-1"); err != nil {
		t.Fatalf("delete propio: %v", err)
	}
}
