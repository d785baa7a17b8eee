// Package validation checks requests against a service description.
//
// Two modes exist. Document mode (Document) takes a free-form JSON document
// and inspects the concrete parameter values it carries. Envelope mode
// (Envelope) takes a typed request and trusts the kind tags the sender
// declares, without looking at values. Both modes stop at the first
// violation and classify it as one of exactly two reasons: the requested
// action does not exist, or a required parameter is missing or unusable.
//
// Validation never executes actions, never coerces values, and never
// applies declared defaults.
package validation

import "fmt"

// Reason classifies a validation failure.
type Reason string

// The closed set of failure reasons. Everything that is not "no such
// action" is reported as a missing required parameter, wrong-kind values
// included.
const (
	ReasonActionNotFound   Reason = "action_not_found"
	ReasonMissingParameter Reason = "missing_required_parameter"
)

// Mode names the validation mode that produced a result.
type Mode string

const (
	// ModeDocument inspects concrete values in a free-form document.
	ModeDocument Mode = "document"

	// ModeEnvelope trusts the kind tags a typed request declares.
	ModeEnvelope Mode = "envelope"
)

// Error describes the first violation a validation pass found.
type Error struct {
	// Reason classifies the failure.
	Reason Reason `json:"reason"`

	// Action is the requested action name, empty when the request did not
	// name one.
	Action string `json:"action,omitempty"`

	// Parameter names the offending parameter for ReasonMissingParameter.
	Parameter string `json:"parameter,omitempty"`

	// Message is a human-readable diagnostic naming the offender.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Result is the verdict of one validation pass. Err is nil exactly when
// Valid is true.
type Result struct {
	Valid bool   `json:"valid"`
	Err   *Error `json:"error,omitempty"`
}

func valid() Result {
	return Result{Valid: true}
}

func actionNotFound(action string) Result {
	msg := "action not found"
	if action != "" {
		msg = fmt.Sprintf("action not found: %s", action)
	}
	return Result{Err: &Error{
		Reason:  ReasonActionNotFound,
		Action:  action,
		Message: msg,
	}}
}

func missingParameter(action, parameter string) Result {
	return Result{Err: &Error{
		Reason:    ReasonMissingParameter,
		Action:    action,
		Parameter: parameter,
		Message:   fmt.Sprintf("required parameter %s missing or invalid for action %s", parameter, action),
	}}
}
