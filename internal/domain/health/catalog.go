package health

import (
	"strings"

	"pet-health-tracker/internal/domain/care"
)

// DefaultRecurrenceMonths es el intervalo de rappel por defecto de toda
// vacuna cuyo registro o entrada de catálogo no diga otra cosa.
const DefaultRecurrenceMonths = 12

// CatalogEntry es una obligación recurrente del catálogo de cuidados.
type CatalogEntry struct {
	Name             string
	Mandatory        bool
	RecurrenceMonths int

	// Custom marca una vacuna añadida por el usuario (no integrada).
	// Los calculadores la tratan exactamente igual que una de catálogo.
	Custom bool
}

// Catalog agrupa las obligaciones de vacunación de una especie.
type Catalog struct {
	Mandatory []CatalogEntry
	Optional  []CatalogEntry

	DefaultRecurrenceMonths int
}

// CatalogFor devuelve el catálogo integrado de la especie (lookup
// insensible a mayúsculas). Cualquier especie desconocida resuelve a un
// catálogo vacío: sin obligaciones, nunca un error.
func CatalogFor(species string) Catalog {
	switch strings.ToLower(strings.TrimSpace(species)) {
	case "chat":
		return Catalog{
			Mandatory: entries(true, "Rage", "Typhus félin (Panleucopénie)", "Coryza félin"),
			Optional:  entries(false, "Leucose féline (FeLV)", "Chlamydiose"),

			DefaultRecurrenceMonths: DefaultRecurrenceMonths,
		}
	case "chien":
		return Catalog{
			Mandatory: entries(true,
				"Carré (C)",
				"Hépatite de Rubarth (H)",
				"Parvovirose (P)",
				"Parainfluenza (Pi)",
				"Leptospirose (L)",
			),
			Optional: entries(false,
				"Rage (R)",
				"Toux de chenil (Bordetella bronchiseptica)",
				"Leishmaniose",
				"Piroplasmose (babésiose)",
			),

			DefaultRecurrenceMonths: DefaultRecurrenceMonths,
		}
	default:
		return Catalog{
			Mandatory: []CatalogEntry{},
			Optional:  []CatalogEntry{},

			DefaultRecurrenceMonths: DefaultRecurrenceMonths,
		}
	}
}

// WithCustom devuelve una copia del catálogo extendida con las vacunas
// personalizadas encontradas en el historial: la lista de obligaciones no
// es cerrada. Las integradas mandan si hay colisión de nombre; cada
// personalizada se añade una sola vez, tras las integradas de su sección.
func (c Catalog) WithCustom(events []care.Event) Catalog {
	known := make(map[string]struct{}, len(c.Mandatory)+len(c.Optional))
	for _, e := range c.Mandatory {
		known[e.Name] = struct{}{}
	}
	for _, e := range c.Optional {
		known[e.Name] = struct{}{}
	}

	out := Catalog{
		Mandatory: append([]CatalogEntry(nil), c.Mandatory...),
		Optional:  append([]CatalogEntry(nil), c.Optional...),

		DefaultRecurrenceMonths: c.DefaultRecurrenceMonths,
	}

	for _, e := range events {
		if e.Kind != care.KindVaccine || !e.Custom || e.Name == "" {
			continue
		}
		if _, dup := known[e.Name]; dup {
			continue
		}
		known[e.Name] = struct{}{}

		months := c.DefaultRecurrenceMonths
		if e.RecurrenceMonths != nil && *e.RecurrenceMonths > 0 {
			months = *e.RecurrenceMonths
		}
		entry := CatalogEntry{
			Name:             e.Name,
			Mandatory:        e.Mandatory,
			RecurrenceMonths: months,
			Custom:           true,
		}
		if e.Mandatory {
			out.Mandatory = append(out.Mandatory, entry)
		} else {
			out.Optional = append(out.Optional, entry)
		}
	}

	return out
}

func entries(mandatory bool, names ...string) []CatalogEntry {
	out := make([]CatalogEntry, 0, len(names))
	for _, n := range names {
		out = append(out, CatalogEntry{
			Name:             n,
			Mandatory:        mandatory,
			RecurrenceMonths: DefaultRecurrenceMonths,
		})
	}
	return out
}
