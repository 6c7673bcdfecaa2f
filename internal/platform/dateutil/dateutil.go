package dateutil

import (
	"regexp"
	"strings"
	"time"
)

// Aritmética de fechas para los cálculos de salud.
// Todas las funciones son puras: nunca mutan sus argumentos ni leen el reloj.

// AddMonths suma n meses calendario. Si el mes destino tiene menos días,
// la fecha se normaliza al mes siguiente (31 ene + 1 mes => 2/3 mar).
// Los callers deben tratar ese desborde como comportamiento dado, no corregirlo.
func AddMonths(d time.Time, n int) time.Time {
	return d.AddDate(0, n, 0)
}

// AddWeeks suma 7*n días.
func AddWeeks(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, 7*n)
}

// DiffDays devuelve a-b en días enteros, comparando solo la parte fecha
// (sin hora). Así dos instantes del mismo día local nunca difieren en ±1.
func DiffDays(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(da.Sub(db) / (24 * time.Hour))
}

// AgeInWeeksAt devuelve la edad en semanas completas de birth al instante at.
func AgeInWeeksAt(birth, at time.Time) int {
	return int(at.Sub(birth) / (7 * 24 * time.Hour))
}

// AgeInMonthsAt devuelve los meses calendario completos transcurridos entre
// birth y at: resta de campos mes/año, menos uno si el día de at es anterior
// al día de birth.
func AgeInMonthsAt(birth, at time.Time) int {
	m := (at.Year()-birth.Year())*12 + int(at.Month()) - int(birth.Month())
	if at.Day() < birth.Day() {
		m--
	}
	return m
}

var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// IsValidHHMM valida un texto "HH:MM" en 24h (00:00 a 23:59).
func IsValidHHMM(txt string) bool {
	return hhmmRe.MatchString(strings.TrimSpace(txt))
}

// MaskHHMM aplica la máscara HH:MM durante la escritura: se queda con los
// primeros 4 dígitos e inserta ':' después de los dos primeros.
func MaskHHMM(raw string) string {
	digits := make([]rune, 0, 4)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
			if len(digits) == 4 {
				break
			}
		}
	}
	if len(digits) <= 2 {
		return string(digits)
	}
	return string(digits[:2]) + ":" + string(digits[2:])
}

// FormatFrDate formatea una fecha como "JJ/MM/AAAA".
func FormatFrDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("02/01/2006")
}

var frDateRe = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// ParseFrDate parsea "JJ/MM/AAAA" de forma estricta: 31/02/2024 se rechaza
// en vez de normalizarse a marzo.
func ParseFrDate(txt string) (time.Time, bool) {
	if !frDateRe.MatchString(strings.TrimSpace(txt)) {
		return time.Time{}, false
	}
	d, err := time.Parse("02/01/2006", strings.TrimSpace(txt))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
