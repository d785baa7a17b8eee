// Package decision provides validation decision types and aggregation
// functions. All functions are pure - no side effects.
package decision

import "time"

// Outcomes of a recorded validation decision.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// Decision records one validation verdict (immutable value type).
// Decisions are telemetry: they describe what the validator concluded,
// never the schema itself.
type Decision struct {
	ID            string
	Mode          string // "document" or "envelope"
	Service       string // service name of the schema in effect
	Action        string // requested action name, possibly unknown
	Parameter     string // offending parameter, empty unless one failed
	Outcome       string // "valid" or "invalid"
	Reason        string // failure reason, empty when valid
	CorrelationID string // request uuid, envelope mode only
	CheckedAt     time.Time
}

// IsValid reports whether this decision recorded a passing validation.
func (d Decision) IsValid() bool {
	return d.Outcome == OutcomeValid
}

// Summary aggregates decisions over a period.
type Summary struct {
	From     time.Time
	To       time.Time
	Total    int64
	Valid    int64
	Invalid  int64
	ByReason map[string]int64
}

// Aggregate combines decisions into a summary.
// This is a PURE function.
func Aggregate(decisions []Decision, from, to time.Time) Summary {
	s := Summary{From: from, To: to}

	for _, d := range decisions {
		s.Total++
		if d.IsValid() {
			s.Valid++
			continue
		}

		s.Invalid++
		if d.Reason != "" {
			if s.ByReason == nil {
				s.ByReason = make(map[string]int64)
			}
			s.ByReason[d.Reason]++
		}
	}

	return s
}

// Merge combines multiple summaries.
// This is a PURE function.
func Merge(summaries ...Summary) Summary {
	if len(summaries) == 0 {
		return Summary{}
	}

	result := summaries[0]
	for _, s := range summaries[1:] {
		result.Total += s.Total
		result.Valid += s.Valid
		result.Invalid += s.Invalid

		for reason, n := range s.ByReason {
			if result.ByReason == nil {
				result.ByReason = make(map[string]int64)
			}
			result.ByReason[reason] += n
		}

		// Expand period bounds
		if s.From.Before(result.From) {
			result.From = s.From
		}
		if s.To.After(result.To) {
			result.To = s.To
		}
	}

	return result
}
