// Package envelope provides the typed request/response value types that
// travel between callers and a service.
//
// A Request names the action to invoke, carries a correlation id, and lists
// its parameters with the kind each one claims to be. Values travel as text
// regardless of kind and are opaque at this layer; the declared kinds are
// what envelope-mode validation checks against the service schema. A Response
// answers a Request: it echoes the correlation id and parameters and adds a
// message.
//
// On the wire both sides are JSON:
//
//	{
//	  "action_name": "action_1",
//	  "uuid": "9adcf186-7817-4a69-b038-1e1ec5ff89c4",
//	  "parameters": [
//	    {"param_name": "a_number_1", "value": "33", "type": "Uint32"}
//	  ]
//	}
package envelope

import (
	"encoding/json"
	"fmt"

	"github.com/artpar/actiongate/core/schema"
)

// Param is a single request or response parameter: a name, a textual value,
// and the kind the sender declares the value to be. The value stays a string
// even for numeric and boolean kinds; nothing here verifies that it actually
// matches the declared kind.
type Param struct {
	Name  string      `json:"param_name"`
	Value string      `json:"value"`
	Kind  schema.Kind `json:"type"`
}

// Request asks a service to invoke one action.
type Request struct {
	// Action names the action to invoke.
	Action string `json:"action_name"`

	// ID correlates this request with its response. Wire format is the
	// canonical hyphenated UUID string. Empty means "not yet assigned";
	// the service layer stamps one before the request is processed.
	ID string `json:"uuid"`

	// Params lists the request's parameters in sender order.
	Params []Param `json:"parameters"`
}

// Response answers one Request.
type Response struct {
	// Message is a human-readable outcome, e.g. "validated ok".
	Message string `json:"message"`

	// ID echoes the correlation id of the request being answered.
	ID string `json:"uuid"`

	// Params echoes the request's parameters unchanged.
	Params []Param `json:"parameters"`
}

// Param returns the first parameter with the given name.
func (r Request) Param(name string) (Param, bool) {
	for _, p := range r.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// HasParam reports whether the request carries a parameter with the given
// name whose declared kind equals k.
func (r Request) HasParam(name string, k schema.Kind) bool {
	for _, p := range r.Params {
		if p.Name == name && p.Kind.Equal(k) {
			return true
		}
	}
	return false
}

// Reply builds the response answering this request: the given message plus
// the request's correlation id and parameters, echoed unchanged.
func (r Request) Reply(message string) Response {
	return Response{
		Message: message,
		ID:      r.ID,
		Params:  r.Params,
	}
}

// ParseRequest parses a request from JSON bytes.
func ParseRequest(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("parse request: %w", err)
	}

	return req, nil
}

// ParseResponse parses a response from JSON bytes.
func ParseResponse(data []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return Response{}, fmt.Errorf("parse response: %w", err)
	}

	return resp, nil
}

// EncodeRequest renders a request as JSON.
func EncodeRequest(req Request) ([]byte, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	return data, nil
}

// EncodeResponse renders a response as JSON.
func EncodeResponse(resp Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}

	return data, nil
}
