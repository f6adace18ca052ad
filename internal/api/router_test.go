package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Handler", name)
		w.WriteHeader(http.StatusOK)
	}
}

func testHandlers() Handlers {
	return Handlers{
		GetAvailableSlots:   named("availability"),
		CreateHold:          named("hold"),
		ConfirmBooking:      named("confirm"),
		GetBooking:          named("booking"),
		ListBranches:        named("branches"),
		ListBranchServices:  named("services"),
		GetCalendarDay:      named("calendar"),
		UpdateBookingStatus: named("status"),
	}
}

func TestNewRouter_Routes(t *testing.T) {
	r := NewRouter(testHandlers(), RouterOptions{Logger: logger.Nop()})

	tests := []struct {
		method, path, handler string
	}{
		{http.MethodGet, "/api/v1/availability?branchId=x", "availability"},
		{http.MethodPost, "/api/v1/booking/hold", "hold"},
		{http.MethodPost, "/api/v1/booking/confirm", "confirm"},
		{http.MethodGet, "/api/v1/bookings/abc", "booking"},
		{http.MethodGet, "/api/v1/branches", "branches"},
		{http.MethodGet, "/api/v1/branches/abc/services", "services"},
		{http.MethodGet, "/api/v1/admin/calendar", "calendar"},
		{http.MethodPatch, "/api/v1/admin/bookings/abc/status", "status"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.handler, rec.Header().Get("X-Handler"))
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/booking/hold", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNewRouter_HealthAndMetrics(t *testing.T) {
	r := NewRouter(testHandlers(), RouterOptions{
		MetricsPath:    "/metrics",
		MetricsHandler: named("metrics"),
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "metrics", rec.Header().Get("X-Handler"))
}

func TestNewRouter_HoldIsRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := middleware.NewRateLimiter(rdb, 1, time.Minute, "hold", false, logger.Nop())
	r := NewRouter(testHandlers(), RouterOptions{HoldLimiter: limiter})

	send := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "192.0.2.10:1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("/api/v1/booking/hold"))
	assert.Equal(t, http.StatusTooManyRequests, send("/api/v1/booking/hold"))
	// подтверждение не ограничивается
	assert.Equal(t, http.StatusOK, send("/api/v1/booking/confirm"))
}
