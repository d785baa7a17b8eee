package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/artpar/actiongate/adapters/metrics"
	"github.com/artpar/actiongate/domain/decision"
	"github.com/artpar/actiongate/ports"
)

// LocalDecisionRecorder buffers validation decisions and writes them in
// batches to the store.
type LocalDecisionRecorder struct {
	store         ports.DecisionStore
	metrics       *metrics.Collector
	buffer        []decision.Decision
	mu            sync.Mutex
	batchSize     int
	flushInterval time.Duration
	stopCh        chan struct{}
	wg            sync.WaitGroup
	closeOnce     sync.Once
}

// NewLocalDecisionRecorder creates a new local decision recorder.
func NewLocalDecisionRecorder(store ports.DecisionStore, batchSize int, flushInterval time.Duration) *LocalDecisionRecorder {
	return NewLocalDecisionRecorderWithMetrics(store, batchSize, flushInterval, nil)
}

// NewLocalDecisionRecorderWithMetrics creates a local decision recorder that
// counts journaled decisions.
func NewLocalDecisionRecorderWithMetrics(store ports.DecisionStore, batchSize int, flushInterval time.Duration, m *metrics.Collector) *LocalDecisionRecorder {
	if batchSize == 0 {
		batchSize = 100
	}
	if flushInterval == 0 {
		flushInterval = 10 * time.Second
	}

	r := &LocalDecisionRecorder{
		store:         store,
		metrics:       m,
		buffer:        make([]decision.Decision, 0, batchSize),
		batchSize:     batchSize,
		flushInterval: flushInterval,
		stopCh:        make(chan struct{}),
	}

	r.wg.Add(1)
	go r.flushLoop()

	return r
}

// Record queues a decision for persistence.
func (r *LocalDecisionRecorder) Record(d decision.Decision) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, d)
	if r.metrics != nil {
		r.metrics.DecisionsRecorded.Inc()
	}

	if len(r.buffer) >= r.batchSize {
		r.flushLocked(context.Background())
	}
}

// Flush forces immediate persistence of queued decisions.
func (r *LocalDecisionRecorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushLocked(ctx)
}

func (r *LocalDecisionRecorder) flushLocked(ctx context.Context) error {
	if len(r.buffer) == 0 {
		return nil
	}

	decisions := make([]decision.Decision, len(r.buffer))
	copy(decisions, r.buffer)
	r.buffer = r.buffer[:0]

	// Write in background to not block
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		r.store.RecordBatch(ctx, decisions)
	}()

	return nil
}

func (r *LocalDecisionRecorder) flushLoop() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Flush(context.Background())
		case <-r.stopCh:
			return
		}
	}
}

// Close stops the recorder and flushes remaining decisions.
func (r *LocalDecisionRecorder) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.stopCh)
		r.wg.Wait()

		// Final flush with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		r.mu.Lock()
		defer r.mu.Unlock()

		if len(r.buffer) > 0 {
			err = r.store.RecordBatch(ctx, r.buffer)
		}
	})
	return err
}

// Ensure interface compliance.
var _ ports.DecisionRecorder = (*LocalDecisionRecorder)(nil)
