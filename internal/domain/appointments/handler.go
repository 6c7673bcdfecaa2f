package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-health-tracker/internal/domain/animals"
	"pet-health-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, animalsSvc *animals.Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc, animalsSvc))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))
	})
}

type reminderChoiceRequest struct {
	Option     string `json:"option" enums:"30m,1h,2h,4h,8h,12h,24h,veille20h,custom"`
	CustomHHMM string `json:"custom_hhmm,omitempty"`
}

// createAppointmentRequest es el cuerpo para crear una cita.
type createAppointmentRequest struct {
	Date      string                  `json:"date"` // YYYY-MM-DD
	Time      string                  `json:"time"` // HH:MM, opcional
	Place     string                  `json:"place"`
	AnimalIDs []string                `json:"animal_ids"`
	Reminders []reminderChoiceRequest `json:"reminders"`
}

type appointmentResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time,omitempty"`
	Place       string    `json:"place,omitempty"`
	AnimalIDs   []string  `json:"animal_ids"`
	ReminderIDs []string  `json:"reminder_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// createAppointmentHandler godoc
// @Summary Crear cita veterinaria
// @Description Crea una cita para uno o varios animales del usuario y programa sus recordatorios. Sin plan explícito se aplican los recordatorios por defecto (víspera a las 20:00 y 2h antes).
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body createAppointmentRequest true "Cita; date en YYYY-MM-DD, time en HH:MM"
// @Success 201 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "algún animal no pertenece al usuario"
// @Router /appointments [post]
func createAppointmentHandler(svc *Service, animalsSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		// Cada animal de la cita debe existir y pertenecer al usuario.
		for _, id := range req.AnimalIDs {
			a, err := animalsSvc.GetByID(r.Context(), id)
			if err != nil {
				http.Error(w, "animal not found: "+id, http.StatusNotFound)
				return
			}
			if a.OwnerUserID != claims.UserID {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		in := CreateInput{
			Date:      d,
			TimeHHMM:  req.Time,
			Place:     req.Place,
			AnimalIDs: req.AnimalIDs,
		}
		for _, c := range req.Reminders {
			in.Reminders = append(in.Reminders, ReminderChoice{
				Option:     ReminderOption(c.Option),
				CustomHHMM: c.CustomHHMM,
			})
		}

		a, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar citas del usuario
// @Tags appointments
// @Produce json
// @Param animal_id query string false "Filtrar por animal"
// @Success 200 {array} appointmentResponse
// @Failure 401 {string} string "unauthorized"
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var (
			items []Appointment
			err   error
		)
		if animalID := strings.TrimSpace(r.URL.Query().Get("animal_id")); animalID != "" {
			items, err = svc.ListByAnimal(r.Context(), animalID)
		} else {
			items, err = svc.ListByOwner(r.Context(), claims.UserID)
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			if a.OwnerUserID != claims.UserID {
				continue
			}
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getAppointmentHandler godoc
// @Summary Consultar una cita
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /appointments/{appointmentID} [get]
func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), claims.UserID, chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// deleteAppointmentHandler godoc
// @Summary Borrar una cita
// @Description Borra la cita y cancela sus recordatorios pendientes.
// @Tags appointments
// @Param appointmentID path string true "ID de la cita"
// @Success 204 {string} string "sin contenido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /appointments/{appointmentID} [delete]
func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "appointmentID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		Date:        a.Date,
		Time:        a.TimeHHMM,
		Place:       a.Place,
		AnimalIDs:   a.AnimalIDs,
		ReminderIDs: a.ReminderIDs,
		CreatedAt:   a.CreatedAt,
	}
}

// writeJSON se repite en cada módulo a propósito: cada handler es dueño
// de su serialización y el helper es trivial.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
