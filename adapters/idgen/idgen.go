// Package idgen provides correlation id generation implementations.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/artpar/actiongate/ports"
	"github.com/google/uuid"
)

// UUID generates random version 4 UUIDs. This is the production generator:
// requests that arrive without a correlation id are stamped with one of
// these, and decision records use them as primary keys.
type UUID struct{}

// New generates a new UUID v4 in canonical hyphenated form.
func (UUID) New() string {
	return uuid.New().String()
}

// Ensure interface compliance.
var _ ports.IDGenerator = UUID{}

// Sequential generates predictable ids (for testing).
type Sequential struct {
	prefix  string
	counter uint64
}

// NewSequential creates a sequential id generator.
func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

// New generates the next sequential id.
func (s *Sequential) New() string {
	n := atomic.AddUint64(&s.counter, 1)
	return s.prefix + strconv.FormatUint(n, 10)
}

// Reset resets the counter (for testing).
func (s *Sequential) Reset() {
	atomic.StoreUint64(&s.counter, 0)
}

// Ensure interface compliance.
var _ ports.IDGenerator = (*Sequential)(nil)
