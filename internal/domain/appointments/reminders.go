package appointments

import (
	"strconv"
	"strings"
	"time"

	"pet-health-tracker/internal/platform/dateutil"
)

// ReminderOption identifica un desfase de recordatorio respecto a la cita.
// Los valores fijos son minutos antes del inicio; "veille20h" es un caso
// especial (la víspera a las 20:00) y "custom" lleva el desfase en HH:MM.
type ReminderOption string

const (
	Reminder30m      ReminderOption = "30m"
	Reminder1h       ReminderOption = "1h"
	Reminder2h       ReminderOption = "2h"
	Reminder4h       ReminderOption = "4h"
	Reminder8h       ReminderOption = "8h"
	Reminder12h      ReminderOption = "12h"
	Reminder24h      ReminderOption = "24h"
	ReminderVeille20 ReminderOption = "veille20h"
	ReminderCustom   ReminderOption = "custom"
)

var presetMinutes = map[ReminderOption]int{
	Reminder30m: 30,
	Reminder1h:  60,
	Reminder2h:  120,
	Reminder4h:  240,
	Reminder8h:  480,
	Reminder12h: 720,
	Reminder24h: 1440,
}

// DefaultReminders es el plan aplicado cuando la cita no trae ninguno.
func DefaultReminders() []ReminderChoice {
	return []ReminderChoice{
		{Option: ReminderVeille20},
		{Option: Reminder2h},
	}
}

// ReminderChoice es una opción elegida; CustomHHMM solo aplica con
// Option == ReminderCustom y expresa la antelación como "HH:MM".
type ReminderChoice struct {
	Option     ReminderOption
	CustomHHMM string
}

// IsValidReminderOption indica si la opción existe.
func IsValidReminderOption(o ReminderOption) bool {
	if o == ReminderVeille20 || o == ReminderCustom {
		return true
	}
	_, ok := presetMinutes[o]
	return ok
}

// ReminderTimes calcula los instantes de disparo de un plan de recordatorios.
// Descarta los que ya quedaron en el pasado (<= now) y las opciones
// inválidas. No programa nada: solo calcula.
func ReminderTimes(appt Appointment, choices []ReminderChoice, now time.Time) []time.Time {
	start := appt.StartsAt()

	var out []time.Time
	for _, c := range choices {
		var trigger time.Time
		switch {
		case c.Option == ReminderVeille20:
			d := appt.Date
			trigger = time.Date(d.Year(), d.Month(), d.Day()-1, 20, 0, 0, 0, d.Location())
		case c.Option == ReminderCustom:
			lead, ok := leadFromHHMM(c.CustomHHMM)
			if !ok {
				continue
			}
			trigger = start.Add(-lead)
		default:
			mins, ok := presetMinutes[c.Option]
			if !ok {
				continue
			}
			trigger = start.Add(-time.Duration(mins) * time.Minute)
		}
		if !trigger.After(now) {
			continue
		}
		out = append(out, trigger)
	}
	return out
}

// leadFromHHMM interpreta "HH:MM" como antelación (horas y minutos).
func leadFromHHMM(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if !dateutil.IsValidHHMM(s) {
		return 0, false
	}
	hh, _ := strconv.Atoi(s[:2])
	mm, _ := strconv.Atoi(s[3:])
	return time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute, true
}
