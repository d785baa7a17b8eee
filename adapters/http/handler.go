// Package http provides the HTTP surface of the validation gateway.
package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/artpar/actiongate/adapters/metrics"
	"github.com/artpar/actiongate/app"
	"github.com/artpar/actiongate/core/schema"
	"github.com/artpar/actiongate/core/validation"
	_ "github.com/artpar/actiongate/docs/swagger" // swagger docs
	"github.com/artpar/actiongate/domain/envelope"
	"github.com/artpar/actiongate/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

// maxBodyBytes bounds request bodies on the validation endpoints.
const maxBodyBytes = 1 << 20

// ErrorResponseBody represents an error response body for swagger docs.
type ErrorResponseBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details for swagger docs.
type ErrorDetail struct {
	Code    string `json:"code" example:"bad_request"`
	Message string `json:"message" example:"request body is not valid JSON"`
}

// VersionResponse represents the version endpoint response.
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
	Service string `json:"service" example:"actiongate"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// DocumentVerdict is the response body for document validation.
type DocumentVerdict struct {
	Valid bool              `json:"valid"`
	Error *validation.Error `json:"error,omitempty"`
}

// EnvelopeVerdict is the response body for envelope validation. It carries
// the reply envelope echoing the request's correlation id.
type EnvelopeVerdict struct {
	Valid    bool              `json:"valid"`
	Error    *validation.Error `json:"error,omitempty"`
	Response envelope.Response `json:"response"`
}

// ActionSummary describes one action for the introspection endpoints.
type ActionSummary struct {
	Name        string   `json:"action_name"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required_parameters"`
	Optional    []string `json:"optional_parameters"`
}

// ActionsResponse lists the declared actions of the loaded schema.
type ActionsResponse struct {
	Service string          `json:"service_name"`
	Actions []ActionSummary `json:"actions"`
}

// DecisionView is the wire shape of one journaled validation decision.
type DecisionView struct {
	ID            string `json:"id"`
	Mode          string `json:"mode" example:"document"`
	Service       string `json:"service"`
	Action        string `json:"action"`
	Parameter     string `json:"parameter,omitempty"`
	Outcome       string `json:"outcome" example:"valid"`
	Reason        string `json:"reason,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
	CheckedAt     string `json:"checked_at"`
}

// DecisionsResponse is the response body for the recent decisions endpoint.
type DecisionsResponse struct {
	Decisions []DecisionView `json:"decisions"`
	Count     int            `json:"count"`
}

// DecisionSummaryResponse aggregates journaled decisions over a period.
type DecisionSummaryResponse struct {
	From     string           `json:"from"`
	To       string           `json:"to"`
	Total    int64            `json:"total"`
	Valid    int64            `json:"valid"`
	Invalid  int64            `json:"invalid"`
	ByReason map[string]int64 `json:"by_reason,omitempty"`
}

// ValidateHandler wraps the validation service for HTTP handling.
type ValidateHandler struct {
	service   *app.ValidationService
	decisions ports.DecisionStore
	logger    zerolog.Logger
	metrics   *metrics.Collector
}

// NewValidateHandler creates a new HTTP validation handler.
func NewValidateHandler(service *app.ValidationService, logger zerolog.Logger) *ValidateHandler {
	return &ValidateHandler{
		service: service,
		logger:  logger,
	}
}

// NewValidateHandlerWithMetrics creates a new HTTP validation handler with metrics.
func NewValidateHandlerWithMetrics(service *app.ValidationService, logger zerolog.Logger, m *metrics.Collector) *ValidateHandler {
	return &ValidateHandler{
		service: service,
		logger:  logger,
		metrics: m,
	}
}

// SetDecisionStore enables the decision introspection endpoints.
func (h *ValidateHandler) SetDecisionStore(store ports.DecisionStore) {
	h.decisions = store
}

// ValidateDocument checks a free-form request document against the schema.
//
//	@Summary		Validate a request document
//	@Description	Checks a free-form JSON document against the loaded service schema, inspecting concrete parameter values
//	@Tags			Validation
//	@Accept			json
//	@Produce		json
//	@Param			request	body		object				true	"Request document with an action_name field and flat parameter fields"
//	@Success		200		{object}	DocumentVerdict		"Document satisfies the action's contract"
//	@Failure		400		{object}	ErrorResponseBody	"Body is not valid JSON"
//	@Failure		404		{object}	DocumentVerdict		"Requested action is not declared"
//	@Failure		422		{object}	DocumentVerdict		"Required parameter missing or incompatible"
//	@Router			/v1/validate/document [post]
func (h *ValidateHandler) ValidateDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read request body")
		writeError(w, http.StatusBadRequest, "bad_request", "Failed to read request body")
		return
	}

	var tree any
	if err := json.Unmarshal(body, &tree); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Request body is not valid JSON")
		return
	}

	// Non-object documents carry no action_name field and fall through to
	// the action-not-found verdict.
	doc, _ := tree.(map[string]any)

	start := time.Now()
	res := h.service.ValidateDocument(r.Context(), doc)
	h.recordVerdict(validation.ModeDocument, res, time.Since(start))

	writeJSON(w, verdictStatus(res), DocumentVerdict{Valid: res.Valid, Error: res.Err})
}

// ValidateEnvelope checks a typed request envelope against the schema.
//
//	@Summary		Validate a request envelope
//	@Description	Checks a typed request envelope against the loaded service schema, trusting the declared kind tags and never inspecting values
//	@Tags			Validation
//	@Accept			json
//	@Produce		json
//	@Param			request	body		object				true	"Request envelope with action_name, uuid and typed parameters"
//	@Success		200		{object}	EnvelopeVerdict		"Envelope satisfies the action's contract"
//	@Failure		400		{object}	ErrorResponseBody	"Body is not a valid request envelope"
//	@Failure		404		{object}	EnvelopeVerdict		"Requested action is not declared"
//	@Failure		422		{object}	EnvelopeVerdict		"Required parameter missing or kind tag mismatched"
//	@Router			/v1/validate/envelope [post]
func (h *ValidateHandler) ValidateEnvelope(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read request body")
		writeError(w, http.StatusBadRequest, "bad_request", "Failed to read request body")
		return
	}

	req, err := envelope.ParseRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Request body is not a valid request envelope")
		return
	}

	start := time.Now()
	out := h.service.ValidateEnvelope(r.Context(), req)
	h.recordVerdict(validation.ModeEnvelope, out.Result, time.Since(start))

	writeJSON(w, verdictStatus(out.Result), EnvelopeVerdict{
		Valid:    out.Result.Valid,
		Error:    out.Result.Err,
		Response: out.Response,
	})
}

// GetSchema returns the loaded service schema.
//
//	@Summary		Get the loaded schema
//	@Description	Returns the service schema currently in effect, in its canonical wire encoding
//	@Tags			Schema
//	@Produce		json
//	@Success		200	{object}	object	"Service schema"
//	@Router			/v1/schema [get]
func (h *ValidateHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	data, err := schema.Encode(h.service.Schema())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to encode schema")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to encode schema")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// ListActions returns a summary of every declared action.
//
//	@Summary		List declared actions
//	@Description	Returns name, description and parameter summaries for every action of the loaded schema
//	@Tags			Schema
//	@Produce		json
//	@Success		200	{object}	ActionsResponse	"Declared actions"
//	@Router			/v1/schema/actions [get]
func (h *ValidateHandler) ListActions(w http.ResponseWriter, r *http.Request) {
	svc := h.service.Schema()

	resp := ActionsResponse{
		Service: svc.Name,
		Actions: make([]ActionSummary, 0, len(svc.Actions)),
	}
	for _, a := range svc.Actions {
		s := ActionSummary{
			Name:        a.Name,
			Description: a.Description,
			Required:    []string{},
			Optional:    []string{},
		}
		for _, p := range a.Parameters {
			if p.Required {
				s.Required = append(s.Required, p.Name)
			} else {
				s.Optional = append(s.Optional, p.Name)
			}
		}
		resp.Actions = append(resp.Actions, s)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetAction returns one declared action in full.
//
//	@Summary		Get one declared action
//	@Description	Returns the full declaration of the named action, or 404 if the schema does not declare it
//	@Tags			Schema
//	@Produce		json
//	@Param			name	path		string				true	"Action name"
//	@Success		200		{object}	object				"Action declaration"
//	@Failure		404		{object}	ErrorResponseBody	"Action not declared"
//	@Router			/v1/schema/actions/{name} [get]
func (h *ValidateHandler) GetAction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	action, ok := h.service.Schema().Action(name)
	if !ok {
		writeError(w, http.StatusNotFound, "action_not_found", "action not found: "+name)
		return
	}

	writeJSON(w, http.StatusOK, action)
}

// RecentDecisions returns the most recent journaled decisions.
//
//	@Summary		List recent validation decisions
//	@Description	Returns the most recently journaled validation decisions, newest first
//	@Tags			Decisions
//	@Produce		json
//	@Param			limit	query		int					false	"Maximum number of decisions to return"	default(50)
//	@Success		200		{object}	DecisionsResponse	"Recent decisions"
//	@Failure		400		{object}	ErrorResponseBody	"Invalid limit"
//	@Failure		503		{object}	ErrorResponseBody	"Decision journal disabled"
//	@Router			/v1/decisions/recent [get]
func (h *ValidateHandler) RecentDecisions(w http.ResponseWriter, r *http.Request) {
	if h.decisions == nil {
		writeError(w, http.StatusServiceUnavailable, "journal_disabled", "The decision journal is disabled")
		return
	}

	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", "Invalid limit, expected a positive integer")
			return
		}
		limit = n
	}
	if limit > 500 {
		limit = 500
	}

	decisions, err := h.decisions.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read recent decisions")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to read recent decisions")
		return
	}

	views := make([]DecisionView, 0, len(decisions))
	for _, d := range decisions {
		views = append(views, DecisionView{
			ID:            d.ID,
			Mode:          d.Mode,
			Service:       d.Service,
			Action:        d.Action,
			Parameter:     d.Parameter,
			Outcome:       d.Outcome,
			Reason:        d.Reason,
			CorrelationID: d.CorrelationID,
			CheckedAt:     d.CheckedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, DecisionsResponse{Decisions: views, Count: len(views)})
}

// DecisionSummary returns aggregated decision counts for a period.
//
//	@Summary		Summarize validation decisions
//	@Description	Returns aggregated valid/invalid counts and per-reason breakdown for decisions journaled in the given period
//	@Tags			Decisions
//	@Produce		json
//	@Param			from	query		string					false	"Period start (RFC3339), default 24h ago"
//	@Param			to		query		string					false	"Period end (RFC3339), default now"
//	@Success		200		{object}	DecisionSummaryResponse	"Aggregated counts"
//	@Failure		400		{object}	ErrorResponseBody		"Invalid date"
//	@Failure		503		{object}	ErrorResponseBody		"Decision journal disabled"
//	@Router			/v1/decisions/summary [get]
func (h *ValidateHandler) DecisionSummary(w http.ResponseWriter, r *http.Request) {
	if h.decisions == nil {
		writeError(w, http.StatusServiceUnavailable, "journal_disabled", "The decision journal is disabled")
		return
	}

	now := time.Now().UTC()
	from := now.Add(-24 * time.Hour)
	to := now

	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "Invalid from date, expected RFC3339")
			return
		}
		from = t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "Invalid to date, expected RFC3339")
			return
		}
		to = t
	}

	summary, err := h.decisions.Summary(r.Context(), from, to)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to summarize decisions")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to summarize decisions")
		return
	}

	writeJSON(w, http.StatusOK, DecisionSummaryResponse{
		From:     from.Format(time.RFC3339),
		To:       to.Format(time.RFC3339),
		Total:    summary.Total,
		Valid:    summary.Valid,
		Invalid:  summary.Invalid,
		ByReason: summary.ByReason,
	})
}

// recordVerdict updates validation metrics for one verdict.
func (h *ValidateHandler) recordVerdict(mode validation.Mode, res validation.Result, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}

	outcome := "valid"
	reason := ""
	if !res.Valid {
		outcome = "invalid"
		reason = string(res.Err.Reason)
	}

	h.metrics.ValidationsTotal.WithLabelValues(string(mode), outcome, reason).Inc()
	h.metrics.ValidationDuration.WithLabelValues(string(mode)).Observe(elapsed.Seconds())
}

// verdictStatus maps a validation result to an HTTP status code.
func verdictStatus(res validation.Result) int {
	if res.Valid {
		return http.StatusOK
	}
	if res.Err.Reason == validation.ReasonActionNotFound {
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponseBody{Error: ErrorDetail{Code: code, Message: message}})
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	checker HealthChecker
}

// HealthChecker reports whether a backing dependency is ready.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Liveness returns a simple liveness check.
//
//	@Summary		Liveness check
//	@Description	Returns OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status: ok"
//	@Router			/health [get]
//	@Router			/health/live [get]
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness checks if the service is ready to handle traffic.
//
//	@Summary		Readiness check
//	@Description	Checks if the service and its decision journal are ready to handle traffic
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse			"status: ok"
//	@Failure		503	{object}	map[string]interface{}	"status: unhealthy, error: message"
//	@Router			/health/ready [get]
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.checker != nil {
		if err := h.checker.HealthCheck(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Version returns the service version.
//
//	@Summary		Get service version
//	@Description	Returns the version information for the actiongate service
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	VersionResponse	"Version information"
//	@Router			/version [get]
func Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{
		Version: "dev",
		Service: "actiongate",
	})
}

// RouterConfig holds optional configuration for the router.
type RouterConfig struct {
	Metrics       *metrics.Collector
	EnableOpenAPI bool
}

// NewRouter creates the main HTTP router.
func NewRouter(h *ValidateHandler, healthHandler *HealthHandler, logger zerolog.Logger) chi.Router {
	return NewRouterWithConfig(h, healthHandler, logger, RouterConfig{})
}

// NewRouterWithConfig creates the main HTTP router with optional config.
func NewRouterWithConfig(h *ValidateHandler, healthHandler *HealthHandler, logger zerolog.Logger, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Metrics middleware (if enabled)
	if cfg.Metrics != nil {
		r.Use(NewMetricsMiddleware(cfg.Metrics))
	}

	// Health endpoints
	r.Get("/health", healthHandler.Liveness)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// Metrics endpoint
	if cfg.Metrics != nil {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Swagger UI (if enabled)
	if cfg.EnableOpenAPI {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// Version endpoint
	r.Get("/version", Version)

	// Validation API
	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate/document", h.ValidateDocument)
		r.Post("/validate/envelope", h.ValidateEnvelope)
		r.Get("/schema", h.GetSchema)
		r.Get("/schema/actions", h.ListActions)
		r.Get("/schema/actions/{name}", h.GetAction)
		r.Get("/decisions/recent", h.RecentDecisions)
		r.Get("/decisions/summary", h.DecisionSummary)
	})

	return r
}

// NewMetricsMiddleware creates middleware that records request metrics.
func NewMetricsMiddleware(m *metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip metrics for internal endpoints
			if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" ||
				strings.HasPrefix(r.URL.Path, "/swagger") {
				next.ServeHTTP(w, r)
				return
			}

			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(ww.Status())

			// Label by route pattern, not raw path, to bound cardinality.
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			m.RequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			m.RequestDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

// LoggingMiddleware logs HTTP requests.
type LoggingMiddleware struct {
	logger zerolog.Logger
}

// NewLoggingMiddleware creates a new logging middleware.
func NewLoggingMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			// Skip logging for health checks and metrics
			if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" {
				return
			}

			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}
