package health

import (
	"time"

	"pet-health-tracker/internal/platform/dateutil"
)

// Status es el semáforo de una obligación o de un animal.
type Status string

const (
	StatusGreen  Status = "green"
	StatusOrange Status = "orange"
	StatusRed    Status = "red"
)

// dueSoonDays: a 7 días o menos de la fecha pasa a naranja.
const dueSoonDays = 7

// Classify mapea una fecha de vencimiento y un instante "now" al semáforo.
// La comparación es por días de calendario: el mismo día (diff 0) ya es
// naranja, vencida ayer es rojo.
func Classify(due, now time.Time) Status {
	d := dateutil.DiffDays(due, now)
	switch {
	case d < 0:
		return StatusRed
	case d <= dueSoonDays:
		return StatusOrange
	default:
		return StatusGreen
	}
}

// Aggregate reduce los estados de las obligaciones de un animal al peor:
// rojo domina a naranja, naranja a verde. Sin incidencias: verde.
func Aggregate(statuses []Status) Status {
	agg := StatusGreen
	for _, s := range statuses {
		if s == StatusRed {
			return StatusRed
		}
		if s == StatusOrange {
			agg = StatusOrange
		}
	}
	return agg
}
