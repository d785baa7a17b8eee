package validation

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/artpar/actiongate/core/schema"
)

// FieldAction is the document key naming the action to invoke. Every other
// key of a document is read as a parameter.
const FieldAction = "action_name"

// Unsigned kind bounds for document-mode value checks.
const (
	uint8Bound  = math.MaxUint8
	uint16Bound = math.MaxUint16
	uint32Bound = math.MaxUint32

	// uint64Bound caps Uint64 document values at the 32-bit maximum.
	// Widening it changes which documents are accepted; deployed contracts
	// depend on the current cutoff.
	uint64Bound = math.MaxUint32
)

// Signed kind bounds. Document mode checks the upper bound only; negative
// values of any magnitude pass for every signed kind.
const (
	int8Bound  = math.MaxInt8
	int16Bound = math.MaxInt16
	int32Bound = math.MaxInt32
	int64Bound = math.MaxInt64
)

// Document checks a free-form document against the service description.
// The document is a decoded JSON object: the FieldAction key names the
// action, every other key is a candidate parameter.
//
// Only required parameters are checked, in declaration order; optional
// parameters and extra keys pass unexamined. A required parameter fails
// when its key is absent or its value is not usable as the declared kind.
// Checking stops at the first violation.
func Document(svc schema.Service, doc map[string]any) Result {
	name, isString := doc[FieldAction].(string)
	if !isString {
		return actionNotFound("")
	}

	action, found := svc.Action(name)
	if !found {
		return actionNotFound(name)
	}

	for _, p := range action.Parameters {
		if !p.Required {
			continue
		}
		value, present := doc[p.Name]
		if !present || !kindAccepts(p.Kind, value) {
			return missingParameter(action.Name, p.Name)
		}
	}

	return valid()
}

// kindAccepts reports whether a document value is usable as the given kind.
func kindAccepts(k schema.Kind, value any) bool {
	switch k.Name {
	case schema.KindBool:
		_, ok := value.(bool)
		return ok

	case schema.KindString:
		_, ok := value.(string)
		return ok

	case schema.KindFloat, schema.KindDouble:
		return isNumber(value)

	case schema.KindUint8:
		return fitsUnsigned(value, uint8Bound)
	case schema.KindUint16:
		return fitsUnsigned(value, uint16Bound)
	case schema.KindUint32:
		return fitsUnsigned(value, uint32Bound)
	case schema.KindUint64:
		return fitsUnsigned(value, uint64Bound)

	case schema.KindInt8:
		return fitsSigned(value, int8Bound)
	case schema.KindInt16:
		return fitsSigned(value, int16Bound)
	case schema.KindInt32:
		return fitsSigned(value, int32Bound)
	case schema.KindInt64:
		return fitsSigned(value, int64Bound)

	case schema.KindEnum:
		s, ok := value.(string)
		return ok && k.Allows(s)
	}

	return false
}

// fitsUnsigned reports whether value is a non-negative integral number no
// greater than max. Fractional numbers never fit.
func fitsUnsigned(value any, max uint64) bool {
	switch n := value.(type) {
	case float64:
		return n >= 0 && n == math.Trunc(n) && n <= float64(max)
	case float32:
		f := float64(n)
		return f >= 0 && f == math.Trunc(f) && f <= float64(max)
	case json.Number:
		u, err := strconv.ParseUint(n.String(), 10, 64)
		return err == nil && u <= max
	case int:
		return n >= 0 && uint64(n) <= max
	case int32:
		return n >= 0 && uint64(n) <= max
	case int64:
		return n >= 0 && uint64(n) <= max
	case uint64:
		return n <= max
	}
	return false
}

// fitsSigned reports whether value is an integral number no greater than
// max. Upper bound only: negative values of any magnitude pass.
func fitsSigned(value any, max int64) bool {
	switch n := value.(type) {
	case float64:
		return n == math.Trunc(n) && n <= float64(max)
	case float32:
		f := float64(n)
		return f == math.Trunc(f) && f <= float64(max)
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		return err == nil && i <= max
	case int:
		return int64(n) <= max
	case int32:
		return int64(n) <= max
	case int64:
		return n <= max
	case uint64:
		return n <= uint64(max)
	}
	return false
}

// isNumber reports whether value is any numeric form. Float and Double
// accept every number; range is never checked.
func isNumber(value any) bool {
	switch value.(type) {
	case float64, float32, json.Number, int, int32, int64, uint64:
		return true
	}
	return false
}
