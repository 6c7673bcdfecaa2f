package health

import "pet-health-tracker/internal/domain/care"

// LatestMatching recorre events (sin reordenarlos ni mutarlos) y devuelve
// el que tenga la fecha de administración máxima entre los que cumplen
// match. Los eventos con fecha cero se ignoran (registro malformado).
//
// Empate de fechas de administración: gana el registrado más tarde
// (RecordedAt mayor). Como el log es append-only, una corrección añadida
// después de un duplicado es la autoritativa. La elección es determinista
// y no depende del orden en que la persistencia entregue el historial.
func LatestMatching(events []care.Event, match func(care.Event) bool) (care.Event, bool) {
	var best care.Event
	found := false

	for _, e := range events {
		if e.Date.IsZero() || !match(e) {
			continue
		}
		switch {
		case !found:
			best = e
			found = true
		case e.Date.After(best.Date):
			best = e
		case e.Date.Equal(best.Date) && !e.RecordedAt.Before(best.RecordedAt):
			best = e
		}
	}

	return best, found
}

// byKind construye un predicado por tipo de evento.
func byKind(kind care.Kind) func(care.Event) bool {
	return func(e care.Event) bool { return e.Kind == kind }
}

// byVaccineName construye un predicado vacuna + nombre de obligación.
func byVaccineName(name string) func(care.Event) bool {
	return func(e care.Event) bool {
		return e.Kind == care.KindVaccine && e.Name == name
	}
}
