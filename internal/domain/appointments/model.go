package appointments

import (
	"strconv"
	"strings"
	"time"

	"pet-health-tracker/internal/platform/dateutil"
)

// Appointment es una cita veterinaria. Puede compartirse entre varios
// animales del mismo dueño (una sola cita, varios acompañantes).
type Appointment struct {
	ID          string
	OwnerUserID string

	// Date es el día de la cita; TimeHHMM la hora "HH:MM".
	Date     time.Time
	TimeHHMM string

	Place     string
	AnimalIDs []string

	// ReminderIDs son los identificadores devueltos por el planificador
	// de recordatorios, para poder cancelarlos si la cita se borra.
	ReminderIDs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartsAt combina día y hora en el instante de inicio. Con hora inválida
// o vacía, la cita cuenta a medianoche del día.
func (a Appointment) StartsAt() time.Time {
	d := a.Date
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())

	hhmm := strings.TrimSpace(a.TimeHHMM)
	if dateutil.IsValidHHMM(hhmm) {
		hh, _ := strconv.Atoi(hhmm[:2])
		mm, _ := strconv.Atoi(hhmm[3:])
		start = start.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
	}
	return start
}
