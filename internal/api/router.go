package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
)

// Handlers обработчики маршрутов API
type Handlers struct {
	GetAvailableSlots   http.HandlerFunc
	CreateHold          http.HandlerFunc
	ConfirmBooking      http.HandlerFunc
	GetBooking          http.HandlerFunc
	ListBranches        http.HandlerFunc
	ListBranchServices  http.HandlerFunc
	GetCalendarDay      http.HandlerFunc
	UpdateBookingStatus http.HandlerFunc
}

// RouterOptions инфраструктура роутера. Нулевые поля отключают соответствующую функциональность
type RouterOptions struct {
	Logger         middleware.Logger
	Metrics        middleware.HTTPMetrics
	MetricsPath    string
	MetricsHandler http.Handler
	HoldLimiter    *middleware.RateLimiter
	ServiceName    string
}

// NewRouter собирает маршруты сервиса
func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	if opts.Logger != nil {
		r.Use(middleware.AccessLog(opts.Logger))
	}
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	r.HandleFunc("/health", health).Methods(http.MethodGet)
	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/branches", h.ListBranches).Methods(http.MethodGet)
	api.HandleFunc("/branches/{branchId}/services", h.ListBranchServices).Methods(http.MethodGet)
	api.HandleFunc("/availability", h.GetAvailableSlots).Methods(http.MethodGet)

	var hold http.Handler = h.CreateHold
	if opts.HoldLimiter != nil {
		hold = opts.HoldLimiter.Middleware(hold)
	}
	api.Handle("/booking/hold", hold).Methods(http.MethodPost)
	api.HandleFunc("/booking/confirm", h.ConfirmBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", h.GetBooking).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/calendar", h.GetCalendarDay).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", h.UpdateBookingStatus).Methods(http.MethodPatch)

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "scheduling"
	}
	return otelhttp.NewHandler(r, serviceName)
}

func health(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
