package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-reservations/internal/audit"
	"github.com/BruksfildServices01/restaurant-reservations/internal/config"
	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/handlers"
	"github.com/BruksfildServices01/restaurant-reservations/internal/infra/repository"
	"github.com/BruksfildServices01/restaurant-reservations/internal/session"
	ucReservation "github.com/BruksfildServices01/restaurant-reservations/internal/usecase/reservation"
)

// ======================================================
// Harness
// ======================================================

var restaurantZone = time.FixedZone("BRT", -3*60*60)

type fakeImages struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeImages) Put(_ context.Context, key string, body []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if contentType != "image/webp" || len(body) == 0 {
		return "", fmt.Errorf("unexpected upload %s", contentType)
	}
	f.keys = append(f.keys, key)
	return "https://cdn.test/" + key, nil
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
	today  time.Time
}

func newAPI(t *testing.T, images handlers.ImageStore) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		AdminUsername: "admin",
		AdminPassword: "s3cret",
		SessionTTL:    time.Hour,
	}

	d := audit.NewDispatcher()
	t.Cleanup(d.Close)

	today := time.Now().In(restaurantZone)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:       cfg,
		Reservations: repository.NewReservationMemoryRepository(),
		Menu:         repository.NewMenuMemoryRepository(),
		Sessions:     session.NewMemoryStore(),
		Images:       images,
		Audit:        d,
		Options: ucReservation.Options{
			Now: func() time.Time { return time.Now().In(restaurantZone) },
		},
	})

	return &apiClient{t: t, router: r, today: today}
}

func (a *apiClient) day(offset int) string {
	return a.today.AddDate(0, 0, offset).Format("2006-01-02")
}

func (a *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *apiClient) login() {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "s3cret",
	})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(a.t, out.Token)
	a.token = out.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type reservationBody struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests int    `json:"guests"`
	Status string `json:"status"`
}

type errorBody struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func guest(name, date, slot string) map[string]any {
	return map[string]any{
		"name":   name,
		"email":  strings.ToLower(name) + "@x.com",
		"phone":  "555",
		"date":   date,
		"time":   slot,
		"guests": 2,
	}
}

// ======================================================
// Reservations
// ======================================================

func TestReservations_ConcreteScenario(t *testing.T) {
	a := newAPI(t, nil)
	tomorrow := a.day(1)

	w := a.do(http.MethodPost, "/api/reservations", guest("A", tomorrow, "19:00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[reservationBody](t, w)
	assert.Equal(t, "pending", first.Status)
	assert.Equal(t, 2, first.Guests)
	assert.True(t, strings.HasPrefix(first.Date, tomorrow+"T00:00:00"), first.Date)

	w = a.do(http.MethodPost, "/api/reservations", guest("B", tomorrow, "19:00"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "slot_conflict", decode[errorBody](t, w).Code)

	a.login()

	w = a.do(http.MethodPatch, "/api/reservations/"+first.ID+"/status", map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", decode[reservationBody](t, w).Status)

	w = a.do(http.MethodGet, "/api/reservations/date/"+tomorrow, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]reservationBody](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
}

func TestReservations_SubmitErrors(t *testing.T) {
	a := newAPI(t, nil)

	cases := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"past date", guest("A", a.day(-1), "19:00"), http.StatusBadRequest, "invalid_date"},
		{"bad slot", guest("A", a.day(1), "18:15"), http.StatusBadRequest, "validation_error"},
		{"missing name", guest("", a.day(1), "19:00"), http.StatusBadRequest, "validation_error"},
		{"malformed body", "not an object", http.StatusBadRequest, "validation_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := a.do(http.MethodPost, "/api/reservations", tc.body)
			require.Equal(t, tc.status, w.Code, w.Body.String())

			body := decode[errorBody](t, w)
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestReservations_StaffRoutesNeedToken(t *testing.T) {
	a := newAPI(t, nil)

	for _, path := range []string{
		"/api/reservations",
		"/api/reservations/date/" + a.day(1),
		"/api/admin/stats",
	} {
		w := a.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := a.do(http.MethodDelete, "/api/reservations/some-id", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReservations_StaffLifecycle(t *testing.T) {
	a := newAPI(t, nil)
	a.login()

	w := a.do(http.MethodPost, "/api/reservations", guest("A", a.day(2), "12:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	res := decode[reservationBody](t, w)

	w = a.do(http.MethodGet, "/api/reservations/"+res.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPatch, "/api/reservations/"+res.ID, map[string]any{"guests": 8, "time": "12:30"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[reservationBody](t, w)
	assert.Equal(t, 8, updated.Guests)
	assert.Equal(t, "12:30", updated.Time)

	w = a.do(http.MethodPatch, "/api/reservations/"+res.ID, map[string]any{"status": "seated"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_status", decode[errorBody](t, w).Code)

	w = a.do(http.MethodPatch, "/api/reservations/"+res.ID+"/status", map[string]string{"status": "CONFIRMED"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_status", decode[errorBody](t, w).Code)

	w = a.do(http.MethodGet, "/api/reservations?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]reservationBody](t, w), 1)

	w = a.do(http.MethodGet, "/api/reservations?status=confirmed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = a.do(http.MethodDelete, "/api/reservations/"+res.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reservation deleted successfully", decode[map[string]string](t, w)["message"])

	w = a.do(http.MethodGet, "/api/reservations/"+res.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "reservation_not_found", decode[errorBody](t, w).Code)
}

func TestReservations_UnknownIDTransition(t *testing.T) {
	a := newAPI(t, nil)
	a.login()

	w := a.do(http.MethodPatch, "/api/reservations/nonexistent-id/status", map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "reservation_not_found", decode[errorBody](t, w).Code)
}

func TestReservations_Availability(t *testing.T) {
	a := newAPI(t, nil)
	date := a.day(3)

	w := a.do(http.MethodPost, "/api/reservations", guest("A", date, "20:30"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(http.MethodGet, "/api/reservations/availability?date="+date, nil)
	require.Equal(t, http.StatusOK, w.Code)

	out := decode[struct {
		Date  string `json:"date"`
		Slots []struct {
			Time      string `json:"time"`
			Available bool   `json:"available"`
		} `json:"slots"`
	}](t, w)

	assert.Equal(t, date, out.Date)
	require.Len(t, out.Slots, len(domain.TimeSlots()))
	for _, s := range out.Slots {
		assert.Equal(t, s.Time != "20:30", s.Available, s.Time)
	}

	w = a.do(http.MethodGet, "/api/reservations/availability", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ======================================================
// Auth
// ======================================================

func TestAuth_LoginLogout(t *testing.T) {
	a := newAPI(t, nil)

	w := a.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode[errorBody](t, w).Code)

	a.login()

	w = a.do(http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/admin/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ======================================================
// Menu
// ======================================================

type menuBody struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	Image           string  `json:"image"`
	IsAvailable     bool    `json:"isAvailable"`
	PreparationTime int     `json:"preparationTime"`
}

func (a *apiClient) createMenuItem(name, category string, price float64) menuBody {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/menu", map[string]any{
		"name":        name,
		"description": name + " of the day",
		"price":       price,
		"category":    category,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[menuBody](a.t, w)
}

func TestMenu_CRUD(t *testing.T) {
	a := newAPI(t, nil)

	w := a.do(http.MethodPost, "/api/menu", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	a.login()

	soup := a.createMenuItem("Onion soup", "soups", 18.5)
	assert.True(t, soup.IsAvailable)
	assert.Equal(t, 15, soup.PreparationTime)
	assert.Equal(t, 18.5, soup.Price)

	a.createMenuItem("Tiramisu", "desserts", 22)
	a.createMenuItem("Bruschetta", "appetizers", 14)

	w = a.do(http.MethodPost, "/api/menu", map[string]any{
		"name": "Cola", "description": "Can", "price": 6, "category": "drinks",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_category", decode[errorBody](t, w).Code)

	w = a.do(http.MethodPost, "/api/menu", map[string]any{
		"name": "Cola", "description": "Can", "category": "beverages",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decode[errorBody](t, w).Code)

	a.token = ""
	w = a.do(http.MethodGet, "/api/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]menuBody](t, w)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"appetizers", "desserts", "soups"}, []string{items[0].Category, items[1].Category, items[2].Category})

	a.login()

	w = a.do(http.MethodPut, "/api/menu/"+soup.ID, map[string]any{"price": 19.9, "name": "French onion soup"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "French onion soup", decode[menuBody](t, w).Name)

	w = a.do(http.MethodPatch, "/api/menu/"+soup.ID+"/toggle-availability", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[menuBody](t, w).IsAvailable)

	w = a.do(http.MethodGet, "/api/menu/category/soups", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = a.do(http.MethodGet, "/api/menu?available=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]menuBody](t, w), 1)

	w = a.do(http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[map[string]map[string]int](t, w)
	assert.Equal(t, 3, stats["menu"]["total"])
	assert.Equal(t, 2, stats["menu"]["available"])

	w = a.do(http.MethodDelete, "/api/menu/"+soup.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/menu/"+soup.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "menu_item_not_found", decode[errorBody](t, w).Code)
}

func pngUpload(t *testing.T, field string) (*bytes.Buffer, string) {
	t.Helper()

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 64, 48))))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "dish.png")
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &body, mw.FormDataContentType()
}

func (a *apiClient) upload(path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+a.token)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestMenu_ImageUpload(t *testing.T) {
	images := &fakeImages{}
	a := newAPI(t, images)
	a.login()

	item := a.createMenuItem("Risotto", "main-courses", 42)

	body, ct := pngUpload(t, "image")
	w := a.upload("/api/menu/"+item.ID+"/image", body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[menuBody](t, w)
	require.Len(t, images.keys, 1)
	assert.Equal(t, "https://cdn.test/"+images.keys[0], got.Image)
	assert.True(t, strings.HasPrefix(images.keys[0], "menu/"+item.ID+"/"))
	assert.True(t, strings.HasSuffix(images.keys[0], ".webp"))
}

func TestMenu_ImageUploadDisabled(t *testing.T) {
	a := newAPI(t, nil)
	a.login()

	item := a.createMenuItem("Risotto", "main-courses", 42)

	body, ct := pngUpload(t, "image")
	w := a.upload("/api/menu/"+item.ID+"/image", body, ct)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// ======================================================
// Health
// ======================================================

func TestHealth(t *testing.T) {
	a := newAPI(t, nil)

	w := a.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = a.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
