// Package app provides application services that orchestrate domain logic.
package app

import (
	"context"
	"sync/atomic"

	"github.com/artpar/actiongate/core/schema"
	"github.com/artpar/actiongate/core/validation"
	"github.com/artpar/actiongate/domain/decision"
	"github.com/artpar/actiongate/domain/envelope"
	"github.com/artpar/actiongate/ports"
	"github.com/rs/zerolog"
)

// ValidationService validates inbound requests against the loaded service
// schema and journals every verdict.
type ValidationService struct {
	ids      ports.IDGenerator
	clock    ports.Clock
	recorder ports.DecisionRecorder
	logger   zerolog.Logger

	// Current schema (hot-reloadable)
	svc atomic.Pointer[schema.Service]
}

// ValidationDeps contains dependencies for ValidationService.
// Recorder may be nil to disable the decision journal.
type ValidationDeps struct {
	IDs      ports.IDGenerator
	Clock    ports.Clock
	Recorder ports.DecisionRecorder
	Logger   zerolog.Logger
}

// NewValidationService creates a new validation service checking against svc.
func NewValidationService(deps ValidationDeps, svc schema.Service) *ValidationService {
	s := &ValidationService{
		ids:      deps.IDs,
		clock:    deps.Clock,
		recorder: deps.Recorder,
		logger:   deps.Logger,
	}

	s.UpdateSchema(svc)

	return s
}

// UpdateSchema swaps in a new schema.
// This is thread-safe and can be called while validations are in flight;
// each validation sees one consistent schema for its whole pass.
func (s *ValidationService) UpdateSchema(svc schema.Service) {
	s.svc.Store(&svc)
}

// Schema returns the schema currently in effect.
func (s *ValidationService) Schema() schema.Service {
	return *s.svc.Load()
}

// EnvelopeResult represents the outcome of validating one request envelope.
type EnvelopeResult struct {
	Result   validation.Result
	Request  envelope.Request  // as validated, correlation id stamped
	Response envelope.Response // reply carrying the verdict message
}

// ValidateDocument checks a free-form document against the current schema.
func (s *ValidationService) ValidateDocument(ctx context.Context, doc map[string]any) validation.Result {
	svc := s.Schema()

	// 1. Validate (PURE)
	res := validation.Document(svc, doc)

	// 2. Journal the verdict (async I/O)
	action, _ := doc[validation.FieldAction].(string)
	s.record(validation.ModeDocument, svc.Name, action, "", res)

	return res
}

// ValidateEnvelope checks a typed request envelope against the current
// schema. Requests arriving without a correlation id are stamped with a
// fresh one before anything else happens.
func (s *ValidationService) ValidateEnvelope(ctx context.Context, req envelope.Request) EnvelopeResult {
	svc := s.Schema()

	// 1. Stamp a correlation id if the caller did not supply one
	if req.ID == "" {
		req.ID = s.ids.New()
	}

	// 2. Validate (PURE)
	res := validation.Envelope(svc, req)

	// 3. Build the reply envelope (PURE)
	message := "accepted"
	if !res.Valid {
		message = res.Err.Message
	}
	resp := req.Reply(message)

	// 4. Journal the verdict (async I/O)
	s.record(validation.ModeEnvelope, svc.Name, req.Action, req.ID, res)

	return EnvelopeResult{Result: res, Request: req, Response: resp}
}

func (s *ValidationService) record(mode validation.Mode, service, action, correlationID string, res validation.Result) {
	outcome := decision.OutcomeValid
	reason := ""
	parameter := ""
	if !res.Valid {
		outcome = decision.OutcomeInvalid
		reason = string(res.Err.Reason)
		parameter = res.Err.Parameter
	}

	if res.Valid {
		s.logger.Debug().
			Str("mode", string(mode)).
			Str("action", action).
			Msg("validation passed")
	} else {
		s.logger.Info().
			Str("mode", string(mode)).
			Str("action", action).
			Str("reason", reason).
			Str("parameter", parameter).
			Msg("validation rejected")
	}

	if s.recorder == nil {
		return
	}

	s.recorder.Record(decision.Decision{
		ID:            s.ids.New(),
		Mode:          string(mode),
		Service:       service,
		Action:        action,
		Parameter:     parameter,
		Outcome:       outcome,
		Reason:        reason,
		CorrelationID: correlationID,
		CheckedAt:     s.clock.Now(),
	})
}
