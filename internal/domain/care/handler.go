package care

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-health-tracker/internal/domain/animals"
	"pet-health-tracker/internal/domain/care/details"
	"pet-health-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, animalsSvc *animals.Service) {
	r.Route("/animals/{animalID}/care", func(cr chi.Router) {
		cr.Post("/", createEventHandler(svc, animalsSvc))
		cr.Get("/", listEventsHandler(svc, animalsSvc))
	})
}

type regimenRequest struct {
	DoseValue   float64  `json:"dose_value"`
	DoseUnit    string   `json:"dose_unit"` // comprime | ml
	DosesPerDay int      `json:"doses_per_day"`
	Start       string   `json:"start"` // YYYY-MM-DD
	End         string   `json:"end"`   // YYYY-MM-DD
	Times       []string `json:"times"` // HH:MM
}

type measurementRequest struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// createEventRequest es el cuerpo para registrar un acto de cuidado.
type createEventRequest struct {
	Kind             Kind                `json:"kind" enums:"VACCINE,ANTIPARASITIC,DEWORMER,TREATMENT,WEIGHT"`
	Name             string              `json:"name"`
	Date             string              `json:"date"` // YYYY-MM-DD
	RecurrenceMonths *int                `json:"recurrence_months"`
	Mandatory        bool                `json:"mandatory"`
	Custom           bool                `json:"custom"`
	Product          string              `json:"product"`
	Treatment        *regimenRequest     `json:"treatment"`
	Weight           *measurementRequest `json:"weight"`
}

type eventResponse struct {
	ID               string              `json:"id"`
	AnimalID         string              `json:"animal_id"`
	Kind             Kind                `json:"kind"`
	Name             string              `json:"name,omitempty"`
	Date             time.Time           `json:"date"`
	RecurrenceMonths *int                `json:"recurrence_months,omitempty"`
	Mandatory        bool                `json:"mandatory"`
	Custom           bool                `json:"custom"`
	Product          string              `json:"product,omitempty"`
	RecordedAt       time.Time           `json:"recorded_at"`
	Treatment        *regimenRequest     `json:"treatment,omitempty"`
	Weight           *measurementRequest `json:"weight,omitempty"`
}

// createEventHandler godoc
// @Summary Registrar acto de cuidado
// @Description Añade un evento al historial del animal (vacuna, antiparasitario, vermífugo, tratamiento o pesada). El log es append-only: las correcciones se registran como eventos nuevos.
// @Tags care
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body createEventRequest true "Evento; date en formato YYYY-MM-DD"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / date inválida / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/care [post]
func createEventHandler(svc *Service, animalsSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := authorizeAnimal(w, r, animalsSvc)
		if !ok {
			return
		}

		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		in := CreateInput{
			Kind:             req.Kind,
			Name:             req.Name,
			Date:             d,
			RecurrenceMonths: req.RecurrenceMonths,
			Mandatory:        req.Mandatory,
			Custom:           req.Custom,
			Product:          req.Product,
		}

		if req.Treatment != nil {
			start, err1 := time.Parse("2006-01-02", strings.TrimSpace(req.Treatment.Start))
			end, err2 := time.Parse("2006-01-02", strings.TrimSpace(req.Treatment.End))
			if err1 != nil || err2 != nil {
				http.Error(w, "treatment start/end must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Treatment = &details.Regimen{
				DoseValue:   req.Treatment.DoseValue,
				DoseUnit:    details.DoseUnit(req.Treatment.DoseUnit),
				DosesPerDay: req.Treatment.DosesPerDay,
				Start:       start,
				End:         end,
				Times:       req.Treatment.Times,
			}
		}
		if req.Weight != nil {
			in.Weight = &details.Measurement{Value: req.Weight.Value, Unit: req.Weight.Unit}
		}

		e, err := svc.Create(r.Context(), a.ID, in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// listEventsHandler godoc
// @Summary Listar historial de cuidados
// @Description Lista los eventos del animal, más recientes primero. Filtros: kinds (CSV), from/to (YYYY-MM-DD), limit.
// @Tags care
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param kinds query string false "Lista CSV de tipos (ej: VACCINE,DEWORMER)"
// @Param from query string false "Fecha mínima YYYY-MM-DD"
// @Param to query string false "Fecha máxima YYYY-MM-DD"
// @Param limit query int false "Máximo de eventos. 0 = sin límite"
// @Success 200 {array} eventResponse
// @Failure 400 {string} string "filtros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/care [get]
func listEventsHandler(svc *Service, animalsSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := authorizeAnimal(w, r, animalsSvc)
		if !ok {
			return
		}

		var filter ListFilter

		if raw := strings.TrimSpace(r.URL.Query().Get("kinds")); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				k := Kind(strings.ToUpper(strings.TrimSpace(part)))
				if !IsValidKind(k) {
					http.Error(w, "unknown kind: "+string(k), http.StatusBadRequest)
					return
				}
				filter.Kinds = append(filter.Kinds, k)
			}
		}

		for name, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
			if raw := strings.TrimSpace(r.URL.Query().Get(name)); raw != "" {
				t, err := time.Parse("2006-01-02", raw)
				if err != nil {
					http.Error(w, name+" must be YYYY-MM-DD", http.StatusBadRequest)
					return
				}
				*dst = &t
			}
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			filter.Limit = n
		}

		items, err := svc.ListByAnimal(r.Context(), a.ID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

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

func toEventResponse(e Event) eventResponse {
	out := eventResponse{
		ID:               e.ID,
		AnimalID:         e.AnimalID,
		Kind:             e.Kind,
		Name:             e.Name,
		Date:             e.Date,
		RecurrenceMonths: e.RecurrenceMonths,
		Mandatory:        e.Mandatory,
		Custom:           e.Custom,
		Product:          e.Product,
		RecordedAt:       e.RecordedAt,
	}
	if e.Treatment != nil {
		out.Treatment = &regimenRequest{
			DoseValue:   e.Treatment.DoseValue,
			DoseUnit:    string(e.Treatment.DoseUnit),
			DosesPerDay: e.Treatment.DosesPerDay,
			Start:       e.Treatment.Start.Format("2006-01-02"),
			End:         e.Treatment.End.Format("2006-01-02"),
			Times:       e.Treatment.Times,
		}
	}
	if e.Weight != nil {
		out.Weight = &measurementRequest{Value: e.Weight.Value, Unit: e.Weight.Unit}
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
