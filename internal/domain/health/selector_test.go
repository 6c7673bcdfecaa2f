package health

import (
	"testing"
	"time"

	"pet-health-tracker/internal/domain/care"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func vaccineOn(name string, d time.Time) care.Event {
	return care.Event{Kind: care.KindVaccine, Name: name, Date: d, RecordedAt: d}
}

func TestLatestMatching_PicksMaxDate(t *testing.T) {
	// Tres entradas "Rage" en cualquier orden de inserción: gana la de marzo.
	orders := [][]care.Event{
		{vaccineOn("Rage", date(2025, time.January, 1)), vaccineOn("Rage", date(2025, time.March, 1)), vaccineOn("Rage", date(2025, time.February, 1))},
		{vaccineOn("Rage", date(2025, time.March, 1)), vaccineOn("Rage", date(2025, time.January, 1)), vaccineOn("Rage", date(2025, time.February, 1))},
		{vaccineOn("Rage", date(2025, time.February, 1)), vaccineOn("Rage", date(2025, time.January, 1)), vaccineOn("Rage", date(2025, time.March, 1))},
	}
	for i, events := range orders {
		got, found := LatestMatching(events, byVaccineName("Rage"))
		if !found || !got.Date.Equal(date(2025, time.March, 1)) {
			t.Fatalf("order %d: got %v found=%v", i, got.Date, found)
		}
	}
}

func TestLatestMatching_NoMatch(t *testing.T) {
	events := []care.Event{vaccineOn("Rage", date(2025, time.January, 1))}
	if _, found := LatestMatching(events, byVaccineName("Coryza félin")); found {
		t.Fatalf("expected no match")
	}
	if _, found := LatestMatching(nil, byKind(care.KindDewormer)); found {
		t.Fatalf("expected no match on empty log")
	}
}

func TestLatestMatching_TieResolvesToLastRecorded(t *testing.T) {
	d := date(2025, time.May, 1)
	first := care.Event{ID: "a", Kind: care.KindDewormer, Date: d, RecordedAt: date(2025, time.May, 1)}
	second := care.Event{ID: "b", Kind: care.KindDewormer, Date: d, RecordedAt: date(2025, time.May, 2)}

	// Mismo resultado independientemente del orden de entrega del repo.
	for i, events := range [][]care.Event{{first, second}, {second, first}} {
		got, found := LatestMatching(events, byKind(care.KindDewormer))
		if !found || got.ID != "b" {
			t.Fatalf("order %d: expected later-recorded event, got %q", i, got.ID)
		}
	}
}

func TestLatestMatching_IgnoresZeroDates(t *testing.T) {
	events := []care.Event{
		{Kind: care.KindVaccine, Name: "Rage"}, // fecha cero: malformado
		vaccineOn("Rage", date(2025, time.February, 1)),
	}
	got, found := LatestMatching(events, byVaccineName("Rage"))
	if !found || !got.Date.Equal(date(2025, time.February, 1)) {
		t.Fatalf("got %v found=%v", got.Date, found)
	}
}

func TestLatestMatching_DoesNotReorderInput(t *testing.T) {
	events := []care.Event{
		vaccineOn("Rage", date(2025, time.March, 1)),
		vaccineOn("Rage", date(2025, time.January, 1)),
	}
	_, _ = LatestMatching(events, byVaccineName("Rage"))
	if !events[0].Date.Equal(date(2025, time.March, 1)) {
		t.Fatalf("input slice reordered")
	}
}
