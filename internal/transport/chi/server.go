// Package chi exposes the relay endpoints over HTTP with the chi router.
package chi

import (
	"net/http"
	"time"

	router "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	"github.com/kailas-cloud/lexrelay/internal/metrics"
	gen "github.com/kailas-cloud/lexrelay/internal/transport/generated"
	checkoutuc "github.com/kailas-cloud/lexrelay/internal/usecase/checkout"
	generationuc "github.com/kailas-cloud/lexrelay/internal/usecase/generation"
	healthuc "github.com/kailas-cloud/lexrelay/internal/usecase/health"
	legalcodeuc "github.com/kailas-cloud/lexrelay/internal/usecase/legalcode"
	searchuc "github.com/kailas-cloud/lexrelay/internal/usecase/search"
	transcriptuc "github.com/kailas-cloud/lexrelay/internal/usecase/transcript"
	usageuc "github.com/kailas-cloud/lexrelay/internal/usecase/usage"
)

const maxBodyBytes = 1 << 20

// Services are the use cases behind the relay endpoints.
// A nil service answers 503 not_configured; Search is required.
type Services struct {
	Search     *searchuc.Service
	Generation *generationuc.Service
	Usage      *usageuc.Service
	Checkout   *checkoutuc.Service
	Transcript *transcriptuc.Service
	LegalCodes *legalcodeuc.Service
	Health     *healthuc.Service
}

// CORSConfig lists the browser origins allowed to call the relay.
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         time.Duration
}

// Server implements generated.ServerInterface for the oapi-codegen chi router.
type Server struct {
	gen.Unimplemented

	svc           Services
	auth          *Authenticator
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server. auth may be nil when no route needs a caller identity.
func NewServer(svc Services, auth *Authenticator, logger *zap.Logger) *Server {
	s := &Server{svc: svc, auth: auth, logger: logger}
	s.errorHandlers = []errorHandler{
		upstreamHandler,
		sentinelHandler(domain.ErrUnknownCollection, http.StatusBadRequest, gen.ErrorCodeUnknownCollection),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, gen.ErrorCodeInvalidRequest),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, gen.ErrorCodeUnauthorized),
		sentinelHandler(domain.ErrQuotaExceeded, http.StatusPaymentRequired, gen.ErrorCodeQuotaExceeded),
		sentinelHandler(domain.ErrCustomerNotFound, http.StatusNotFound, gen.ErrorCodeCustomerNotFound),
		sentinelHandler(domain.ErrTranscriptUnavailable, http.StatusNotFound, gen.ErrorCodeTranscriptUnavailable),
		sentinelHandler(domain.ErrNotConfigured, http.StatusServiceUnavailable, gen.ErrorCodeNotConfigured),
	}
	return s
}

// Handler builds the router with the middleware chain and all relay routes.
func (s *Server) Handler(c CORSConfig) http.Handler {
	r := router.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(jsonRecoverer(s.logger))
	r.Use(wideEventMiddleware(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: c.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         int(c.MaxAge.Seconds()),
	}))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, gen.ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, gen.ErrorCodeMethodNotAllowed, "method not allowed")
	})

	opts := gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: paramErrorHandler,
	}
	if s.auth != nil {
		opts.Middlewares = []gen.MiddlewareFunc{s.auth.Middleware}
	}
	return gen.HandlerWithOptions(s, opts)
}

// HealthCheck handles GET /health. It never touches a dependency.
func (s *Server) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, gen.HealthResponse{Status: "ok", Message: "search proxy is running"})
}

// Ready handles GET /ready.
func (s *Server) Ready(w http.ResponseWriter, r *http.Request) {
	if s.svc.Health == nil {
		writeJSON(w, http.StatusOK, gen.ReadyResponse{Status: gen.ReadyResponseStatusOk, Checks: map[string]string{}})
		return
	}

	report := s.svc.Health.Check(r.Context())
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, gen.ReadyResponse{Status: gen.ReadyResponseStatus(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
