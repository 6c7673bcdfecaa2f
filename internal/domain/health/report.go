package health

import (
	"time"

	"pet-health-tracker/internal/domain/animals"
	"pet-health-tracker/internal/domain/care"
)

// ObligationKind distingue los calculadores aplicados.
type ObligationKind string

const (
	ObligationVaccine       ObligationKind = "vaccine"
	ObligationAntiparasitic ObligationKind = "antiparasitic"
	ObligationDewormer      ObligationKind = "dewormer"
)

// Pistas de navegación que el cliente usa para el deep-link de cada
// incidencia. Aquí solo se transportan.
const (
	ScreenVaccines  = "vaccins"
	ScreenParasites = "vermifuge"
)

// Nombres de las obligaciones únicas (no dependen del catálogo).
const (
	ObligationNameAntiparasitic = "Anti-puce"
	ObligationNameDewormer      = "Vermifuge"
)

// Obligation es el estado derivado de una obligación. No se persiste.
type Obligation struct {
	Name   string
	Kind   ObligationKind
	Status Status

	// DueDate es nil cuando no hay fecha calculable (vacuna nunca
	// administrada): clasificación roja directa.
	DueDate *time.Time

	Screen string
}

// Report es el informe de salud derivado de un animal.
type Report struct {
	AggregateStatus Status

	// Issues son las obligaciones no verdes, en orden de catálogo:
	// vacunas obligatorias, luego anti-puce, luego vermífugo.
	Issues []Obligation

	// OptionalVaccines se calculan para mostrar, pero no entran ni en
	// Issues ni en el agregado (solo informativas).
	OptionalVaccines []Obligation
}

// BuildReport deriva el informe de salud de un animal a partir de su
// snapshot y su historial de cuidados. Función pura del par (snapshot,
// now): now se muestrea una sola vez por informe y se pasa explícito para
// que todas las obligaciones se evalúen contra el mismo instante. No
// retiene referencias ni cachea nada; se puede llamar por render.
func BuildReport(a animals.Animal, events []care.Event, now time.Time) Report {
	catalog := CatalogFor(a.Species).WithCustom(events)

	var birth time.Time
	if a.BirthDate != nil {
		birth = *a.BirthDate
	}

	issues := make([]Obligation, 0)

	// Vacunas obligatorias (integradas primero, luego personalizadas).
	for _, entry := range catalog.Mandatory {
		ob := vaccineObligation(events, entry, now)
		if ob.Status != StatusGreen {
			issues = append(issues, ob)
		}
	}

	// Anti-puce: obligación única, cadencia fija tras el primer registro.
	antiDue, antiOK := AntiparasiticDue(birth, events, now)
	if ob := parasiteObligation(ObligationNameAntiparasitic, ObligationAntiparasitic, antiDue, antiOK, now); ob.Status != StatusGreen {
		issues = append(issues, ob)
	}

	// Vermífugo: obligación única con protocolo por edad.
	vermiDue, vermiOK := DewormerDue(birth, events, now)
	if ob := parasiteObligation(ObligationNameDewormer, ObligationDewormer, vermiDue, vermiOK, now); ob.Status != StatusGreen {
		issues = append(issues, ob)
	}

	optional := make([]Obligation, 0, len(catalog.Optional))
	for _, entry := range catalog.Optional {
		optional = append(optional, vaccineObligation(events, entry, now))
	}

	statuses := make([]Status, 0, len(issues))
	for _, i := range issues {
		statuses = append(statuses, i.Status)
	}

	return Report{
		AggregateStatus:  Aggregate(statuses),
		Issues:           issues,
		OptionalVaccines: optional,
	}
}

// parasiteObligation clasifica anti-puce/vermífugo. Sin fecha calculable
// (ok=false, típicamente fecha de nacimiento desconocida) el estado es rojo
// terminal sin fecha, igual que una vacuna nunca administrada.
func parasiteObligation(name string, kind ObligationKind, due time.Time, ok bool, now time.Time) Obligation {
	ob := Obligation{
		Name:   name,
		Kind:   kind,
		Screen: ScreenParasites,
	}
	if !ok {
		ob.Status = StatusRed
		return ob
	}
	ob.Status = Classify(due, now)
	ob.DueDate = &due
	return ob
}

func vaccineObligation(events []care.Event, entry CatalogEntry, now time.Time) Obligation {
	ob := Obligation{
		Name:   entry.Name,
		Kind:   ObligationVaccine,
		Screen: ScreenVaccines,
	}

	due, ok := VaccineDue(events, entry)
	if !ok {
		// Nunca administrada: rojo sin fecha, sin pasar por Classify.
		ob.Status = StatusRed
		return ob
	}

	ob.Status = Classify(due, now)
	ob.DueDate = &due
	return ob
}
