package details

import "time"

// DoseUnit es la unidad de la dosis de un tratamiento.
type DoseUnit string

const (
	DoseUnitTablet DoseUnit = "comprime"
	DoseUnitML     DoseUnit = "ml"
)

// Regimen modela la pauta de un tratamiento/medicación personalizada:
// dosis, tomas por día y horas de recordatorio dentro de un rango de fechas.
type Regimen struct {
	DoseValue   float64
	DoseUnit    DoseUnit
	DosesPerDay int

	Start time.Time
	End   time.Time

	// Times son horas "HH:MM" de recordatorio diario, ordenadas.
	Times []string
}
