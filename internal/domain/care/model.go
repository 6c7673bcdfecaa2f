package care

import (
	"time"

	"pet-health-tracker/internal/domain/care/details"
)

// Event es un acto de cuidado registrado para un animal.
// Los eventos son inmutables una vez creados: una corrección se modela
// como un nuevo evento (el selector de registros se queda con el más
// reciente), nunca como edición o borrado del anterior.
type Event struct {
	ID       string
	AnimalID string

	Kind Kind

	// Name es el nombre de la obligación para vacunas (ej. "Rage") y el
	// nombre del tratamiento para TREATMENT. Vacío en el resto de tipos.
	Name string

	// Date es la fecha de administración.
	Date time.Time

	// RecurrenceMonths sobreescribe el intervalo por defecto del catálogo.
	// Solo para vacunas; nil = usar el del catálogo.
	RecurrenceMonths *int

	// Mandatory/Custom marcan la sección del catálogo para vacunas.
	// Custom indica una vacuna añadida por el usuario fuera del catálogo.
	Mandatory bool
	Custom    bool

	Product string

	RecordedAt time.Time

	// Detalles por tipo (nil cuando no aplican).
	Treatment *details.Regimen     // solo KindTreatment
	Weight    *details.Measurement // solo KindWeight
}
