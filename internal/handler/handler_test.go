package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"booking-calendar-api/internal/config"
	"booking-calendar-api/internal/handler"
	"booking-calendar-api/internal/model"
	"booking-calendar-api/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		AdminPassword:  "testpass123",
		TokenTTL:       15 * time.Minute,
		CascadeHistory: true,
	}
}

// newHandler builds a handler without a database. Only tests that fail
// validation before any query may use it.
func newHandler(t *testing.T, st *store.Store) *handler.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h, err := handler.New(st, nil, logger, testConfig())
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return h
}

func setup(t *testing.T) (*handler.Handler, *store.Store) {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)
	st := store.New(pool)
	return newHandler(t, st), st
}

// router wires the tool surface without the auth middleware; the token
// exchange and bearer check have their own tests.
func router(h *handler.Handler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/token", h.Token)
	r.POST("/clients", h.CreateClient)
	r.GET("/clients/:id", h.GetClient)
	r.POST("/appointments", h.CreateAppointment)
	r.GET("/appointments", h.ListAppointments)
	r.GET("/appointments/search", h.SearchAppointments)
	r.GET("/appointments/:id", h.GetAppointment)
	r.PATCH("/appointments/:id", h.UpdateAppointment)
	r.DELETE("/appointments/:id", h.DeleteAppointment)
	r.POST("/appointments/:id/complete", h.CompleteAppointment)
	r.POST("/appointments/:id/reminder", h.MarkReminder)
	r.GET("/appointments/:id/history", h.History)
	r.GET("/schedule/:date", h.DailySchedule)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

// ----- auth -----

func TestTokenExchange(t *testing.T) {
	r := router(newHandler(t, nil))

	rec := do(r, "POST", "/auth/token", gin.H{"password": "testpass123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["token"] == nil || body["token"] == "" {
		t.Error("missing token")
	}
	if body["expires_in"].(float64) != 900 {
		t.Errorf("expires_in = %v, want 900", body["expires_in"])
	}
}

func TestTokenWrongPassword(t *testing.T) {
	r := router(newHandler(t, nil))

	rec := do(r, "POST", "/auth/token", gin.H{"password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if rec := do(r, "POST", "/auth/token", gin.H{}); rec.Code != http.StatusBadRequest {
		t.Errorf("missing password: expected 400, got %d", rec.Code)
	}
}

// ----- validation (no database needed) -----

func TestCreateAppointmentValidation(t *testing.T) {
	r := router(newHandler(t, nil))

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing title", gin.H{"id_cliente": 1, "data_appuntamento": "2025-12-01", "ora_inizio": "09:00"}},
		{"missing client", gin.H{"data_appuntamento": "2025-12-01", "ora_inizio": "09:00", "titolo": "x"}},
		{"bad date", gin.H{"id_cliente": 1, "data_appuntamento": "01/12/2025", "ora_inizio": "09:00", "titolo": "x"}},
		{"bad start", gin.H{"id_cliente": 1, "data_appuntamento": "2025-12-01", "ora_inizio": "9am", "titolo": "x"}},
		{"unpadded start", gin.H{"id_cliente": 1, "data_appuntamento": "2025-12-01", "ora_inizio": "9:30", "titolo": "x"}},
		{"unpadded end", gin.H{"id_cliente": 1, "data_appuntamento": "2025-12-01", "ora_inizio": "09:00", "ora_fine": "9:45", "titolo": "x"}},
		{"bad end", gin.H{"id_cliente": 1, "data_appuntamento": "2025-12-01", "ora_inizio": "09:00", "ora_fine": "25:00", "titolo": "x"}},
		{"end before start", gin.H{"id_cliente": 1, "data_appuntamento": "2025-12-01", "ora_inizio": "10:00", "ora_fine": "09:00", "titolo": "x"}},
		{"end equals start", gin.H{"id_cliente": 1, "data_appuntamento": "2025-12-01", "ora_inizio": "09:00", "ora_fine": "09:00", "titolo": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, "POST", "/appointments", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestListFilterValidation(t *testing.T) {
	r := router(newHandler(t, nil))

	for _, q := range []string{
		"data_da=yesterday",
		"data_a=soon",
		"stato=done",
		"urgente=maybe",
		"id_cliente=zero",
		"id_cliente=-1",
	} {
		t.Run(q, func(t *testing.T) {
			rec := do(r, "GET", "/appointments?"+q, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	r := router(newHandler(t, nil))
	if rec := do(r, "GET", "/appointments/search", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if rec := do(r, "GET", "/appointments/search?q=++", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("blank query: expected 400, got %d", rec.Code)
	}
}

func TestPathIDValidation(t *testing.T) {
	r := router(newHandler(t, nil))
	for _, path := range []string{"/clients/abc", "/clients/0", "/clients/-3"} {
		if rec := do(r, "GET", path, nil); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, rec.Code)
		}
	}
}

func TestScheduleDateValidation(t *testing.T) {
	r := router(newHandler(t, nil))
	if rec := do(r, "GET", "/schedule/not-a-date", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestClientValidation(t *testing.T) {
	r := router(newHandler(t, nil))

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing phone", gin.H{"nome": "Mario", "cognome": "Rossi"}},
		{"missing name", gin.H{"cognome": "Rossi", "telefono": "333-1111"}},
		{"bad email", gin.H{"nome": "Mario", "cognome": "Rossi", "telefono": "333-1111", "email": "not-an-email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, "POST", "/clients", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

// ----- full flow against a live database -----

func seedClient(t *testing.T, st *store.Store) *model.Client {
	t.Helper()
	email := fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	c := &model.Client{FirstName: "Mario", LastName: "Rossi", Phone: "333-1111", Email: &email}
	if err := st.CreateClient(context.Background(), c); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

func flowDate() string {
	// far-future day so runs do not collide with each other
	return fmt.Sprintf("28%02d-%02d-%02d",
		uuid.New().ID()%100, uuid.New().ID()%12+1, uuid.New().ID()%28+1)
}

func TestAppointmentLifecycle(t *testing.T) {
	h, st := setup(t)
	r := router(h)
	cl := seedClient(t, st)
	date := flowDate()

	// create with duration instead of an explicit end
	rec := do(r, "POST", "/appointments", gin.H{
		"id_cliente":        cl.ID,
		"data_appuntamento": date,
		"ora_inizio":        "09:00",
		"durata_minuti":     60,
		"titolo":            "Prima visita",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decode(t, rec)
	if created["ora_fine"] != "10:00" {
		t.Errorf("ora_fine = %v, want 10:00", created["ora_fine"])
	}
	if created["stato"] != "confermato" {
		t.Errorf("stato = %v, want confermato", created["stato"])
	}
	if created["nome"] != "Mario" || created["cognome"] != "Rossi" {
		t.Error("detail should carry the joined client")
	}
	id := int64(created["id_appuntamento"].(float64))

	// overlapping slot is refused
	rec = do(r, "POST", "/appointments", gin.H{
		"id_cliente":        cl.ID,
		"data_appuntamento": date,
		"ora_inizio":        "09:30",
		"ora_fine":          "10:30",
		"titolo":            "Sovrapposto",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("overlap: expected 409, got %d", rec.Code)
	}

	// adjacent slot is fine
	rec = do(r, "POST", "/appointments", gin.H{
		"id_cliente":        cl.ID,
		"data_appuntamento": date,
		"ora_inizio":        "10:00",
		"ora_fine":          "11:00",
		"titolo":            "Controllo",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("adjacent: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// partial update moves the start, duration carried over
	rec = do(r, "PATCH", fmt.Sprintf("/appointments/%d", id), gin.H{"ora_inizio": "08:00"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decode(t, rec)
	if updated["ora_inizio"] != "08:00" || updated["ora_fine"] != "09:00" {
		t.Errorf("moved slot = %v-%v, want 08:00-09:00", updated["ora_inizio"], updated["ora_fine"])
	}

	// empty update is a client error
	if rec = do(r, "PATCH", fmt.Sprintf("/appointments/%d", id), gin.H{}); rec.Code != http.StatusBadRequest {
		t.Errorf("empty update: expected 400, got %d", rec.Code)
	}

	// complete, then check the trail: creazione, modifica, completamento
	if rec = do(r, "POST", fmt.Sprintf("/appointments/%d/complete", id), nil); rec.Code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d", rec.Code)
	}
	if decode(t, rec)["stato"] != "completato" {
		t.Error("stato should be completato after complete")
	}

	rec = do(r, "GET", fmt.Sprintf("/appointments/%d/history", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", rec.Code)
	}
	hist := decode(t, rec)
	if hist["count"].(float64) < 3 {
		t.Errorf("history count = %v, want >= 3", hist["count"])
	}

	// day view counts the completed one
	rec = do(r, "GET", "/schedule/"+date, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("schedule: expected 200, got %d", rec.Code)
	}
	day := decode(t, rec)
	if day["totale"].(float64) != 2 {
		t.Errorf("totale = %v, want 2", day["totale"])
	}

	// delete cascades history and frees the id
	if rec = do(r, "DELETE", fmt.Sprintf("/appointments/%d", id), nil); rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec = do(r, "GET", fmt.Sprintf("/appointments/%d", id), nil); rec.Code != http.StatusNotFound {
		t.Errorf("after delete: expected 404, got %d", rec.Code)
	}
}

func TestCancelledSlotReusable(t *testing.T) {
	h, st := setup(t)
	r := router(h)
	cl := seedClient(t, st)
	date := flowDate()

	rec := do(r, "POST", "/appointments", gin.H{
		"id_cliente": cl.ID, "data_appuntamento": date,
		"ora_inizio": "14:00", "ora_fine": "15:00", "titolo": "Annullando",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}
	id := int64(decode(t, rec)["id_appuntamento"].(float64))

	rec = do(r, "PATCH", fmt.Sprintf("/appointments/%d", id), gin.H{"stato": "cancellato"})
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// the freed slot books again
	rec = do(r, "POST", "/appointments", gin.H{
		"id_cliente": cl.ID, "data_appuntamento": date,
		"ora_inizio": "14:00", "ora_fine": "15:00", "titolo": "Rimpiazzo",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("rebook after cancel: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// cancelled rows stay out of the day view
	day := decode(t, do(r, "GET", "/schedule/"+date, nil))
	if day["totale"].(float64) != 1 {
		t.Errorf("totale = %v, want 1", day["totale"])
	}
}

func TestCreateAppointmentDanglingClient(t *testing.T) {
	h, _ := setup(t)
	r := router(h)

	rec := do(r, "POST", "/appointments", gin.H{
		"id_cliente": 999999999, "data_appuntamento": flowDate(),
		"ora_inizio": "09:00", "ora_fine": "10:00", "titolo": "x",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMarkReminderEndpoint(t *testing.T) {
	h, st := setup(t)
	r := router(h)
	cl := seedClient(t, st)

	rec := do(r, "POST", "/appointments", gin.H{
		"id_cliente": cl.ID, "data_appuntamento": flowDate(),
		"ora_inizio": "09:00", "ora_fine": "10:00", "titolo": "Da ricordare",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}
	id := int64(decode(t, rec)["id_appuntamento"].(float64))

	rec = do(r, "POST", fmt.Sprintf("/appointments/%d/reminder", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reminder: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if decode(t, rec)["promemoria_inviato"] != true {
		t.Error("promemoria_inviato should be true")
	}

	// the trail records the reminder
	hist := decode(t, do(r, "GET", fmt.Sprintf("/appointments/%d/history", id), nil))
	if hist["count"].(float64) < 2 {
		t.Errorf("history count = %v, want >= 2", hist["count"])
	}

	rec = do(r, "POST", "/appointments/999999999/reminder", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing id: expected 404, got %d", rec.Code)
	}
}

func TestCreateAppointmentDanglingType(t *testing.T) {
	h, st := setup(t)
	r := router(h)
	cl := seedClient(t, st)

	// with an explicit end the FK reports the dangling type; without one
	// the duration lookup must surface the same taxonomy
	for _, body := range []gin.H{
		{"id_cliente": cl.ID, "id_tipo": 999999999, "data_appuntamento": flowDate(),
			"ora_inizio": "09:00", "ora_fine": "10:00", "titolo": "x"},
		{"id_cliente": cl.ID, "id_tipo": 999999999, "data_appuntamento": flowDate(),
			"ora_inizio": "09:00", "titolo": "x"},
	} {
		rec := do(r, "POST", "/appointments", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
	}
}

func TestClientEndpoints(t *testing.T) {
	h, _ := setup(t)
	r := router(h)

	email := fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	rec := do(r, "POST", "/clients", gin.H{
		"nome": "Anna", "cognome": "Bianchi", "telefono": "333-2222", "email": email,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decode(t, rec)
	if created["attivo"] != true {
		t.Error("new client should be attivo")
	}
	id := int64(created["id_cliente"].(float64))

	rec = do(r, "GET", fmt.Sprintf("/clients/%d", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
	if decode(t, rec)["nome"] != "Anna" {
		t.Error("unexpected client payload")
	}

	// duplicate email is a conflict
	rec = do(r, "POST", "/clients", gin.H{
		"nome": "Altra", "cognome": "Persona", "telefono": "333-3333", "email": email,
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate email: expected 409, got %d", rec.Code)
	}
}
