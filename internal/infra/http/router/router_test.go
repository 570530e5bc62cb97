package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/onedayhr/crm-api/internal/infra/http/handlers"
	"github.com/onedayhr/crm-api/internal/infra/http/middleware"
	"github.com/onedayhr/crm-api/internal/usecase"
)

func testRouter(limiter middleware.Limiter) http.Handler {
	return New(Handlers{
		Capture:  handlers.NewCaptureHandler(&usecase.CaptureLeadUseCase{}),
		Telegram: &handlers.TelegramHandler{},
		Health:   handlers.NewHealthHandler(nil),
	}, Options{CaptureLimiter: limiter})
}

func TestPreflight(t *testing.T) {
	r := httptest.NewRequest(http.MethodOptions, "/leads", nil)
	r.Header.Set("Origin", "https://www.1-day-hr.ru")
	r.Header.Set("Access-Control-Request-Method", "PATCH")
	r.Header.Set("Access-Control-Request-Headers", "Content-Type")

	w := httptest.NewRecorder()
	testRouter(nil).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	assert.Empty(t, w.Body.String())
}

func TestBareOptions(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/notifications", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/notifications", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Method not allowed"}`, w.Body.String())
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	h := testRouter(nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "crm_http_requests_total")
}

func TestCaptureIsRateLimited(t *testing.T) {
	h := testRouter(middleware.NewMemoryLimiter(1, time.Minute))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/capture", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty form fails validation")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/capture", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestTelegramNotConfigured(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/telegram/notify", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
