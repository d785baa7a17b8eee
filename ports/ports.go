// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"

	"github.com/artpar/actiongate/domain/decision"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates correlation ids for requests and decisions.
// Implementations produce 128-bit ids in canonical hyphenated UUID form.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// DecisionStore persists validation decisions.
type DecisionStore interface {
	// RecordBatch stores multiple decisions.
	RecordBatch(ctx context.Context, decisions []decision.Decision) error

	// Recent returns the most recent decisions, newest first.
	Recent(ctx context.Context, limit int) ([]decision.Decision, error)

	// Summary returns aggregated counts for decisions checked in [from, to).
	Summary(ctx context.Context, from, to time.Time) (decision.Summary, error)
}

// -----------------------------------------------------------------------------
// Event Ports
// -----------------------------------------------------------------------------

// DecisionRecorder accepts decisions for async persistence.
type DecisionRecorder interface {
	// Record queues a decision for persistence.
	// This should be non-blocking.
	Record(d decision.Decision)

	// Flush forces immediate persistence of queued decisions.
	Flush(ctx context.Context) error

	// Close stops the recorder and flushes remaining decisions.
	Close() error
}
