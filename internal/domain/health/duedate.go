package health

import (
	"time"

	"pet-health-tracker/internal/domain/care"
	"pet-health-tracker/internal/platform/dateutil"
)

// Calculadores de próxima fecha por tipo de obligación. Todos son funciones
// puras de (historial, entrada de catálogo, now): misma entrada, misma
// salida, sin leer el reloj.

// VaccineDue calcula la próxima fecha de una vacuna concreta.
// Sin registro no hay fecha calculable (ok=false): "nunca administrada" es
// una clasificación terminal en rojo, no una comparación de fechas.
func VaccineDue(events []care.Event, entry CatalogEntry) (time.Time, bool) {
	last, found := LatestMatching(events, byVaccineName(entry.Name))
	if !found {
		return time.Time{}, false
	}

	months := entry.RecurrenceMonths
	if months <= 0 {
		months = DefaultRecurrenceMonths
	}
	if last.RecurrenceMonths != nil && *last.RecurrenceMonths > 0 {
		months = *last.RecurrenceMonths
	}

	return dateutil.AddMonths(last.Date, months), true
}

// antiparasiticIntervalMonths es la cadencia fija del anti-puce una vez que
// existe algún registro. No depende de especie ni edad: sigue el etiquetado
// habitual de los productos (a diferencia del vermífugo, que sí ramifica
// por edad).
const antiparasiticIntervalMonths = 3

// firstAntiparasiticWeeks es la edad mínima del primer tratamiento.
const firstAntiparasiticWeeks = 8

// AntiparasiticDue calcula la próxima fecha del tratamiento antiparasitario.
// Sin registro previo la fecha depende de la edad; con fecha de nacimiento
// desconocida no hay nada que calcular (ok=false): rojo terminal, igual que
// una vacuna nunca administrada.
func AntiparasiticDue(birth time.Time, events []care.Event, now time.Time) (time.Time, bool) {
	if last, found := LatestMatching(events, byKind(care.KindAntiparasitic)); found {
		return dateutil.AddMonths(last.Date, antiparasiticIntervalMonths), true
	}

	if birth.IsZero() {
		return time.Time{}, false
	}
	if dateutil.AgeInWeeksAt(birth, now) < firstAntiparasiticWeeks {
		return dateutil.AddWeeks(birth, firstAntiparasiticWeeks), true
	}
	return now, true
}

// dewormerInfantWeeks son las semanas del protocolo cachorro/gatito.
var dewormerInfantWeeks = []int{3, 5, 7}

// DewormerDue calcula la próxima fecha de vermífugo:
//   - con registro previo: cadencia mensual mientras el animal tenga como
//     mucho 6 meses en la fecha candidata, trimestral después;
//   - sin registro y con 7 semanas o menos: la primera toma del protocolo
//     infantil (3, 5, 7 semanas de vida) que siga en el futuro;
//   - en cualquier otro caso: ya toca (now).
//
// Sin registro y sin fecha de nacimiento no hay fecha calculable (ok=false).
func DewormerDue(birth time.Time, events []care.Event, now time.Time) (time.Time, bool) {
	if last, found := LatestMatching(events, byKind(care.KindDewormer)); found {
		candidate := dateutil.AddMonths(last.Date, 1)
		if !birth.IsZero() && dateutil.AgeInMonthsAt(birth, candidate) <= 6 {
			return candidate, true
		}
		return dateutil.AddMonths(last.Date, 3), true
	}

	if birth.IsZero() {
		return time.Time{}, false
	}
	if dateutil.AgeInWeeksAt(birth, now) <= 7 {
		for _, w := range dewormerInfantWeeks {
			if d := dateutil.AddWeeks(birth, w); d.After(now) {
				return d, true
			}
		}
	}
	return now, true
}
