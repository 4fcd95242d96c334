package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	cxauth "github.com/Kevin-Shelton/verizon-cx-demo-sub000"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/metrics/export/prometheus"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/middleware"
)

// NewRouter assembles the service routes with the standard middleware
// chain.
func NewRouter(engine *cxauth.Engine, logger *slog.Logger) *chi.Mux {
	h := NewHandler(engine, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))

	r.Get("/healthz", h.Healthz)
	r.Method(http.MethodGet, "/metrics", prometheus.NewPrometheusExporter(engine).Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalSession(engine))
			r.Post("/portal/token", h.PortalToken)
			r.Get("/portal/launch", h.PortalLaunch)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
