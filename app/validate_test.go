package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/artpar/actiongate/adapters/clock"
	"github.com/artpar/actiongate/adapters/idgen"
	"github.com/artpar/actiongate/app"
	"github.com/artpar/actiongate/core/schema"
	"github.com/artpar/actiongate/core/validation"
	"github.com/artpar/actiongate/domain/decision"
	"github.com/artpar/actiongate/domain/envelope"
	"github.com/rs/zerolog"
)

var baseTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

// mockRecorder implements ports.DecisionRecorder for testing.
type mockRecorder struct {
	mu        sync.Mutex
	decisions []decision.Decision
}

func (m *mockRecorder) Record(d decision.Decision) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions = append(m.decisions, d)
}

func (m *mockRecorder) Flush(ctx context.Context) error { return nil }
func (m *mockRecorder) Close() error                    { return nil }

func (m *mockRecorder) recorded() []decision.Decision {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]decision.Decision, len(m.decisions))
	copy(out, m.decisions)
	return out
}

func testSchema() schema.Service {
	def := "0"
	return schema.Service{
		Name:        "SERVICE_1",
		Description: "test service",
		Actions: []schema.Action{
			{
				Name:        "action_1",
				Description: "an action",
				Parameters: []schema.Parameter{
					{Name: "a_number_1", Kind: schema.Uint32, Required: true},
					{Name: "a_number_2", Kind: schema.Int32, Required: false, Default: &def},
				},
			},
		},
	}
}

func newTestService() (*app.ValidationService, *mockRecorder) {
	rec := &mockRecorder{}
	svc := app.NewValidationService(app.ValidationDeps{
		IDs:      idgen.NewSequential("id-"),
		Clock:    clock.NewFake(baseTime),
		Recorder: rec,
		Logger:   zerolog.Nop(),
	}, testSchema())
	return svc, rec
}

func TestValidationService_ValidateDocument_Valid(t *testing.T) {
	svc, rec := newTestService()

	res := svc.ValidateDocument(context.Background(), map[string]any{
		"action_name": "action_1",
		"a_number_1":  float64(33),
	})

	if !res.Valid {
		t.Fatalf("ValidateDocument valid = false, want true (err: %v)", res.Err)
	}

	decisions := rec.recorded()
	if len(decisions) != 1 {
		t.Fatalf("recorded %d decisions, want 1", len(decisions))
	}

	d := decisions[0]
	if d.ID != "id-1" {
		t.Errorf("ID = %q, want %q", d.ID, "id-1")
	}
	if d.Mode != string(validation.ModeDocument) {
		t.Errorf("Mode = %q, want %q", d.Mode, validation.ModeDocument)
	}
	if d.Service != "SERVICE_1" {
		t.Errorf("Service = %q, want %q", d.Service, "SERVICE_1")
	}
	if d.Action != "action_1" {
		t.Errorf("Action = %q, want %q", d.Action, "action_1")
	}
	if d.Outcome != decision.OutcomeValid {
		t.Errorf("Outcome = %q, want %q", d.Outcome, decision.OutcomeValid)
	}
	if d.Reason != "" {
		t.Errorf("Reason = %q, want empty", d.Reason)
	}
	if d.CorrelationID != "" {
		t.Errorf("CorrelationID = %q, want empty for document mode", d.CorrelationID)
	}
	if !d.CheckedAt.Equal(baseTime) {
		t.Errorf("CheckedAt = %v, want %v", d.CheckedAt, baseTime)
	}
}

func TestValidationService_ValidateDocument_UnknownAction(t *testing.T) {
	svc, rec := newTestService()

	res := svc.ValidateDocument(context.Background(), map[string]any{
		"action_name": "action_4",
	})

	if res.Valid {
		t.Fatal("ValidateDocument valid = true, want false")
	}
	if res.Err.Reason != validation.ReasonActionNotFound {
		t.Errorf("Reason = %q, want %q", res.Err.Reason, validation.ReasonActionNotFound)
	}

	decisions := rec.recorded()
	if len(decisions) != 1 {
		t.Fatalf("recorded %d decisions, want 1", len(decisions))
	}
	if decisions[0].Outcome != decision.OutcomeInvalid {
		t.Errorf("Outcome = %q, want %q", decisions[0].Outcome, decision.OutcomeInvalid)
	}
	if decisions[0].Reason != string(validation.ReasonActionNotFound) {
		t.Errorf("Reason = %q, want %q", decisions[0].Reason, validation.ReasonActionNotFound)
	}
	if decisions[0].Action != "action_4" {
		t.Errorf("Action = %q, want %q", decisions[0].Action, "action_4")
	}
}

func TestValidationService_ValidateEnvelope_StampsCorrelationID(t *testing.T) {
	svc, rec := newTestService()

	res := svc.ValidateEnvelope(context.Background(), envelope.Request{
		Action: "action_1",
		Params: []envelope.Param{
			{Name: "a_number_1", Value: "33", Kind: schema.Uint32},
		},
	})

	if !res.Result.Valid {
		t.Fatalf("ValidateEnvelope valid = false, want true (err: %v)", res.Result.Err)
	}

	// The request had no id; the service assigns the first generated one.
	if res.Request.ID != "id-1" {
		t.Errorf("Request.ID = %q, want %q", res.Request.ID, "id-1")
	}
	if res.Response.ID != res.Request.ID {
		t.Errorf("Response.ID = %q, want echoed %q", res.Response.ID, res.Request.ID)
	}
	if res.Response.Message != "accepted" {
		t.Errorf("Message = %q, want %q", res.Response.Message, "accepted")
	}

	decisions := rec.recorded()
	if len(decisions) != 1 {
		t.Fatalf("recorded %d decisions, want 1", len(decisions))
	}
	if decisions[0].CorrelationID != "id-1" {
		t.Errorf("CorrelationID = %q, want %q", decisions[0].CorrelationID, "id-1")
	}
	if decisions[0].Mode != string(validation.ModeEnvelope) {
		t.Errorf("Mode = %q, want %q", decisions[0].Mode, validation.ModeEnvelope)
	}
}

func TestValidationService_ValidateEnvelope_KeepsSuppliedID(t *testing.T) {
	svc, _ := newTestService()

	supplied := "9adcf186-7817-4a69-b038-1e1ec5ff89c4"
	res := svc.ValidateEnvelope(context.Background(), envelope.Request{
		Action: "action_1",
		ID:     supplied,
		Params: []envelope.Param{
			{Name: "a_number_1", Value: "33", Kind: schema.Uint32},
		},
	})

	if res.Request.ID != supplied {
		t.Errorf("Request.ID = %q, want supplied %q", res.Request.ID, supplied)
	}
	if res.Response.ID != supplied {
		t.Errorf("Response.ID = %q, want supplied %q", res.Response.ID, supplied)
	}
}

func TestValidationService_ValidateEnvelope_Rejected(t *testing.T) {
	svc, rec := newTestService()

	res := svc.ValidateEnvelope(context.Background(), envelope.Request{
		Action: "action_1",
		ID:     "req-1",
	})

	if res.Result.Valid {
		t.Fatal("ValidateEnvelope valid = true, want false")
	}
	if res.Result.Err.Reason != validation.ReasonMissingParameter {
		t.Errorf("Reason = %q, want %q", res.Result.Err.Reason, validation.ReasonMissingParameter)
	}

	// The reply carries the diagnostic rather than "accepted".
	if res.Response.Message != res.Result.Err.Message {
		t.Errorf("Message = %q, want %q", res.Response.Message, res.Result.Err.Message)
	}
	if res.Response.ID != "req-1" {
		t.Errorf("Response.ID = %q, want %q", res.Response.ID, "req-1")
	}

	decisions := rec.recorded()
	if len(decisions) != 1 {
		t.Fatalf("recorded %d decisions, want 1", len(decisions))
	}
	if decisions[0].Parameter != "a_number_1" {
		t.Errorf("Parameter = %q, want %q", decisions[0].Parameter, "a_number_1")
	}
	if decisions[0].CorrelationID != "req-1" {
		t.Errorf("CorrelationID = %q, want %q", decisions[0].CorrelationID, "req-1")
	}
}

func TestValidationService_UpdateSchema(t *testing.T) {
	svc, _ := newTestService()

	doc := map[string]any{"action_name": "action_9"}

	res := svc.ValidateDocument(context.Background(), doc)
	if res.Valid {
		t.Fatal("action_9 accepted before schema swap")
	}

	svc.UpdateSchema(schema.Service{
		Name: "SERVICE_2",
		Actions: []schema.Action{
			{Name: "action_9"},
		},
	})

	res = svc.ValidateDocument(context.Background(), doc)
	if !res.Valid {
		t.Fatalf("action_9 rejected after schema swap (err: %v)", res.Err)
	}

	if svc.Schema().Name != "SERVICE_2" {
		t.Errorf("Schema().Name = %q, want %q", svc.Schema().Name, "SERVICE_2")
	}
}

func TestValidationService_NilRecorder(t *testing.T) {
	svc := app.NewValidationService(app.ValidationDeps{
		IDs:    idgen.NewSequential("id-"),
		Clock:  clock.NewFake(baseTime),
		Logger: zerolog.Nop(),
	}, testSchema())

	res := svc.ValidateDocument(context.Background(), map[string]any{
		"action_name": "action_1",
		"a_number_1":  float64(33),
	})
	if !res.Valid {
		t.Errorf("ValidateDocument valid = false, want true (err: %v)", res.Err)
	}
}
