package health

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-health-tracker/internal/domain/animals"
	"pet-health-tracker/internal/domain/care"
	"pet-health-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, animalsSvc *animals.Service, careSvc *care.Service) {
	r.Route("/animals/{animalID}/health", func(hr chi.Router) {
		hr.Get("/", getReportHandler(animalsSvc, careSvc))
		hr.Get("/catalog", getCatalogHandler(animalsSvc, careSvc))
	})
}

type obligationResponse struct {
	Name    string     `json:"name"`
	Kind    string     `json:"kind"`
	Status  string     `json:"status"`
	DueDate *time.Time `json:"due_date,omitempty"`
	Screen  string     `json:"screen"`
}

type reportResponse struct {
	AnimalID         string               `json:"animal_id"`
	AggregateStatus  string               `json:"aggregate_status"`
	Issues           []obligationResponse `json:"issues"`
	OptionalVaccines []obligationResponse `json:"optional_vaccines"`
	EvaluatedAt      time.Time            `json:"evaluated_at"`
}

type catalogEntryResponse struct {
	Name             string `json:"name"`
	Mandatory        bool   `json:"mandatory"`
	RecurrenceMonths int    `json:"recurrence_months"`
	Custom           bool   `json:"custom"`
}

type catalogResponse struct {
	Species                 string                 `json:"species"`
	Mandatory               []catalogEntryResponse `json:"mandatory"`
	Optional                []catalogEntryResponse `json:"optional"`
	DefaultRecurrenceMonths int                    `json:"default_recurrence_months"`
}

// getReportHandler godoc
// @Summary Informe de salud del animal
// @Description Deriva el semáforo de salud (agregado + incidencias) a partir del historial de cuidados. Solo el dueño. El informe se calcula bajo demanda con un único instante "now" por petición.
// @Tags health
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} reportResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/health [get]
func getReportHandler(animalsSvc *animals.Service, careSvc *care.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := authorizeAnimal(w, r, animalsSvc)
		if !ok {
			return
		}

		events, err := careSvc.ListByAnimal(r.Context(), a.ID, care.ListFilter{})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Un solo "now" para todo el informe.
		now := time.Now()
		rep := BuildReport(a, events, now)

		writeJSON(w, http.StatusOK, reportResponse{
			AnimalID:         a.ID,
			AggregateStatus:  string(rep.AggregateStatus),
			Issues:           toObligationResponses(rep.Issues),
			OptionalVaccines: toObligationResponses(rep.OptionalVaccines),
			EvaluatedAt:      now,
		})
	}
}

// getCatalogHandler godoc
// @Summary Catálogo de obligaciones del animal
// @Description Devuelve el catálogo de vacunación de la especie, extendido con las vacunas personalizadas encontradas en el historial.
// @Tags health
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} catalogResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/health/catalog [get]
func getCatalogHandler(animalsSvc *animals.Service, careSvc *care.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := authorizeAnimal(w, r, animalsSvc)
		if !ok {
			return
		}

		events, err := careSvc.ListByAnimal(r.Context(), a.ID, care.ListFilter{})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		catalog := CatalogFor(a.Species).WithCustom(events)

		writeJSON(w, http.StatusOK, catalogResponse{
			Species:                 a.Species,
			Mandatory:               toCatalogEntryResponses(catalog.Mandatory),
			Optional:                toCatalogEntryResponses(catalog.Optional),
			DefaultRecurrenceMonths: catalog.DefaultRecurrenceMonths,
		})
	}
}

// authorizeAnimal resuelve claims + animal y aplica la regla de acceso
// (solo el dueño). Escribe la respuesta de error si corta.
func authorizeAnimal(w http.ResponseWriter, r *http.Request, svc *animals.Service) (animals.Animal, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return animals.Animal{}, false
	}

	a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
	if err != nil {
		http.Error(w, "animal not found", http.StatusNotFound)
		return animals.Animal{}, false
	}
	if a.OwnerUserID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return animals.Animal{}, false
	}
	return a, true
}

func toObligationResponses(items []Obligation) []obligationResponse {
	out := make([]obligationResponse, 0, len(items))
	for _, ob := range items {
		out = append(out, obligationResponse{
			Name:    ob.Name,
			Kind:    string(ob.Kind),
			Status:  string(ob.Status),
			DueDate: ob.DueDate,
			Screen:  ob.Screen,
		})
	}
	return out
}

func toCatalogEntryResponses(items []CatalogEntry) []catalogEntryResponse {
	out := make([]catalogEntryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, catalogEntryResponse{
			Name:             e.Name,
			Mandatory:        e.Mandatory,
			RecurrenceMonths: e.RecurrenceMonths,
			Custom:           e.Custom,
		})
	}
	return out
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
