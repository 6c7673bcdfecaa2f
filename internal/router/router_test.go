package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-health-tracker/internal/router"
)

func TestHTTP_EndToEnd_HealthReport(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "owner-1"
	strangerID := "stranger-1"

	// 1) Owner da de alta una gata adulta (2 años)
	birth := time.Now().UTC().AddDate(-2, 0, 0)
	animalID := createAnimal(t, ts.URL, ownerID, map[string]any{
		"name":       "Plume",
		"species":    "chat",
		"breed":      "Européen",
		"sex":        "female",
		"birth_date": birth.Format("2006-01-02"),
	})

	// 2) Otro usuario no ve el animal ni su informe
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals/"+animalID, strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get animal by stranger, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/health", strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 health report by stranger, got %d", st)
		}
	}

	// 3) Sin historial: informe rojo, 5 incidencias (3 vacunas + antiparasitario + vermífugo)
	{
		rep := getReport(t, ts.URL, ownerID, animalID)
		if rep.AggregateStatus != "red" {
			t.Fatalf("expected red aggregate without history, got %q", rep.AggregateStatus)
		}
		if len(rep.Issues) != 5 {
			t.Fatalf("expected 5 issues, got %d: %+v", len(rep.Issues), rep.Issues)
		}
		// Vacunas sin registro: rojas y sin fecha
		if rep.Issues[0].Status != "red" || rep.Issues[0].DueDate != nil {
			t.Fatalf("unvaccinated obligation: %+v", rep.Issues[0])
		}
	}

	// 4) Owner registra la vacuna antirrábica hace 2 meses
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/care", ownerID, map[string]any{
			"kind": "VACCINE",
			"name": "Rage",
			"date": time.Now().UTC().AddDate(0, -2, 0).Format("2006-01-02"),
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create care event, got %d body=%s", st, string(body))
		}
	}

	// 5) La vacuna pasa a verde con fecha prevista; las demás siguen rojas
	{
		rep := getReport(t, ts.URL, ownerID, animalID)
		if rep.AggregateStatus != "red" {
			t.Fatalf("expected red aggregate (otras vacunas pendientes), got %q", rep.AggregateStatus)
		}

		var rage *obligation
		for i := range rep.Issues {
			if rep.Issues[i].Name == "Rage" {
				rage = &rep.Issues[i]
			}
		}
		if rage == nil {
			t.Fatalf("Rage missing from issues: %+v", rep.Issues)
		}
		if rage.Status != "green" || rage.DueDate == nil {
			t.Fatalf("Rage after vaccination: %+v", rage)
		}
	}

	// 6) El catálogo de la especie trae 3 obligatorias
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/health/catalog", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 catalog, got %d body=%s", st, string(body))
		}
		var cat struct {
			Mandatory []struct {
				Name string `json:"name"`
			} `json:"mandatory"`
		}
		_ = json.Unmarshal(body, &cat)
		if len(cat.Mandatory) != 3 {
			t.Fatalf("expected 3 mandatory entries for chat, got %d", len(cat.Mandatory))
		}
	}

	// 7) Razas sugeridas por especie (endpoint público)
	{
		st, body := doReq(t, ts.URL, "GET", "/breeds?species=chat", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 breeds, got %d body=%s", st, string(body))
		}
		var breeds []string
		_ = json.Unmarshal(body, &breeds)
		if len(breeds) == 0 {
			t.Fatalf("expected non-empty breed list for chat, body=%s", string(body))
		}
	}

	// 8) Kind desconocido => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/care", ownerID, map[string]any{
			"kind": "SURGERY",
			"name": "x",
			"date": "2025-01-01",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown kind, got %d", st)
		}
	}
}

func TestHTTP_EndToEnd_Appointments(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "owner-1"
	animalID := createAnimal(t, ts.URL, ownerID, map[string]any{
		"name":       "Milo",
		"species":    "chien",
		"birth_date": "2023-01-15",
	})

	// Cita para dentro de un mes: los recordatorios por defecto caben.
	date := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
	st, body := doReq(t, ts.URL, "POST", "/appointments", ownerID, map[string]any{
		"date":       date,
		"time":       "14:30",
		"place":      "Clinique des Lilas",
		"animal_ids": []string{animalID},
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create appointment, got %d body=%s", st, string(body))
	}

	var appt struct {
		ID          string   `json:"id"`
		ReminderIDs []string `json:"reminder_ids"`
	}
	_ = json.Unmarshal(body, &appt)
	if appt.ID == "" {
		t.Fatalf("create appointment: missing id body=%s", string(body))
	}
	if len(appt.ReminderIDs) != 2 {
		t.Fatalf("expected 2 default reminders, got %d", len(appt.ReminderIDs))
	}

	// Aparece en la lista filtrada por animal
	{
		st, body := doReq(t, ts.URL, "GET", "/appointments?animal_id="+animalID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list appointments, got %d body=%s", st, string(body))
		}
		var items []json.RawMessage
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 {
			t.Fatalf("expected 1 appointment for animal, got %d", len(items))
		}
	}

	// Animal ajeno => 403
	{
		st, _ := doReq(t, ts.URL, "POST", "/appointments", "stranger-1", map[string]any{
			"date":       date,
			"animal_ids": []string{animalID},
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 appointment with foreign animal, got %d", st)
		}
	}

	// Borrar cancela y desaparece
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/appointments/"+appt.ID, ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete appointment, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/appointments/"+appt.ID, ownerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
}

func TestHTTP_AuthFlow_JWT(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{JWTSecret: "test-secret"}))
	defer ts.Close()

	// Registro devuelve token utilizable
	st, body := doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
		"name":     "Marie",
		"email":    "marie@example.com",
		"password": "secret1",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}
	var reg struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	_ = json.Unmarshal(body, &reg)
	if reg.Token == "" || reg.User.ID == "" {
		t.Fatalf("register response incomplete: %s", string(body))
	}

	// Con token: /auth/me responde la cuenta
	{
		st, body := doBearerReq(t, ts.URL, "GET", "/auth/me", reg.Token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 me with token, got %d body=%s", st, string(body))
		}
	}

	// Sin token: 401 (con verifier activo no hay modo debug)
	{
		st, _ := doReq(t, ts.URL, "GET", "/auth/me", "someone", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 me without token, got %d", st)
		}
	}

	// Login con credenciales malas: 401
	{
		st, _ := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
			"email":    "marie@example.com",
			"password": "wrong",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 bad login, got %d", st)
		}
	}

	// El token también sirve para el resto de la API
	{
		st, body := doBearerReq(t, ts.URL, "POST", "/animals", reg.Token, map[string]any{
			"name":       "Plume",
			"species":    "chat",
			"birth_date": "2024-01-01",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create animal with token, got %d body=%s", st, string(body))
		}
	}
}

type obligation struct {
	Name    string     `json:"name"`
	Kind    string     `json:"kind"`
	Status  string     `json:"status"`
	DueDate *time.Time `json:"due_date"`
	Screen  string     `json:"screen"`
}

type report struct {
	AggregateStatus  string       `json:"aggregate_status"`
	Issues           []obligation `json:"issues"`
	OptionalVaccines []obligation `json:"optional_vaccines"`
}

func getReport(t *testing.T, baseURL, userID, animalID string) report {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/animals/"+animalID+"/health", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health report, got %d body=%s", st, string(body))
	}

	var rep report
	if err := json.Unmarshal(body, &rep); err != nil {
		t.Fatalf("report unmarshal: %v body=%s", err, string(body))
	}
	return rep
}

func createAnimal(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create animal: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()
	return doRequest(t, baseURL, method, path, "X-Debug-User-ID", debugUserID, body)
}

func doBearerReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()
	return doRequest(t, baseURL, method, path, "Authorization", "Bearer "+token, body)
}

func doRequest(t *testing.T, baseURL, method, path, header, headerValue string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if headerValue != "" && headerValue != "Bearer " {
		req.Header.Set(header, headerValue)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
