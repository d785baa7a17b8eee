package validation

import (
	"github.com/artpar/actiongate/core/schema"
	"github.com/artpar/actiongate/domain/envelope"
)

// Envelope checks a typed request against the service description using
// only the kinds the request declares for its parameters. Values are never
// inspected; a sender's kind tags are taken at their word.
//
// A required parameter counts as present when some request parameter has
// the same name and a structurally equal kind. Only required parameters
// are checked, in declaration order, and checking stops at the first
// violation.
func Envelope(svc schema.Service, req envelope.Request) Result {
	action, found := svc.Action(req.Action)
	if !found {
		return actionNotFound(req.Action)
	}

	for _, p := range action.Parameters {
		if !p.Required {
			continue
		}
		if !req.HasParam(p.Name, p.Kind) {
			return missingParameter(action.Name, p.Name)
		}
	}

	return valid()
}
