package services

import (
	"sync"
	"time"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// DefaultRevertDelay is how long a terminal status stays visible before
// the broker reverts to Idle.
const DefaultRevertDelay = 2 * time.Second

// statusBuffer bounds the update channel; stale updates are dropped
// rather than blocking the pipeline.
const statusBuffer = 16

// StatusBroker holds the live ProcessingStatus of ingestion operations
// and fans updates out to a single observer channel. Terminal states are
// scheduled back to Idle after a short delay - a timer message, never a
// sleep inside the pipeline.
//
// The broker is an injected, explicitly owned state holder; there is no
// ambient global.
type StatusBroker struct {
	mu          sync.Mutex
	current     domain.ProcessingStatus
	updates     chan domain.ProcessingStatus
	revertDelay time.Duration
	revertTimer *time.Timer
}

// BrokerOption configures a StatusBroker.
type BrokerOption func(*StatusBroker)

// WithRevertDelay overrides the terminal-state visibility delay.
func WithRevertDelay(d time.Duration) BrokerOption {
	return func(b *StatusBroker) {
		if d > 0 {
			b.revertDelay = d
		}
	}
}

// NewStatusBroker creates a broker resting at Idle.
func NewStatusBroker(opts ...BrokerOption) *StatusBroker {
	b := &StatusBroker{
		current:     domain.Idle(),
		updates:     make(chan domain.ProcessingStatus, statusBuffer),
		revertDelay: DefaultRevertDelay,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Current returns the latest published status.
func (b *StatusBroker) Current() domain.ProcessingStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Updates returns the observer channel. Single consumer.
func (b *StatusBroker) Updates() <-chan domain.ProcessingStatus {
	return b.updates
}

// Publish records a new status and notifies the observer. Progress never
// decreases within one operation. Terminal statuses schedule an automatic
// revert to Idle after the visibility delay; a newer publish cancels any
// pending revert.
func (b *StatusBroker) Publish(status domain.ProcessingStatus) {
	b.mu.Lock()

	if b.revertTimer != nil {
		b.revertTimer.Stop()
		b.revertTimer = nil
	}

	// Monotone progress within the same operation.
	if status.State == b.current.State &&
		status.DocumentID == b.current.DocumentID &&
		status.Progress < b.current.Progress {
		status.Progress = b.current.Progress
	}

	b.current = status
	if status.IsTerminal() {
		b.revertTimer = time.AfterFunc(b.revertDelay, b.revertToIdle)
	}
	b.mu.Unlock()

	b.notify(status)
}

// revertToIdle fires from the timer once a terminal state has been
// visible long enough.
func (b *StatusBroker) revertToIdle() {
	b.mu.Lock()
	if !b.current.IsTerminal() {
		// A new operation started before the timer fired.
		b.mu.Unlock()
		return
	}
	b.current = domain.Idle()
	b.revertTimer = nil
	b.mu.Unlock()

	b.notify(domain.Idle())
}

// notify sends without blocking, dropping the oldest pending update if
// the observer has fallen behind.
func (b *StatusBroker) notify(status domain.ProcessingStatus) {
	for {
		select {
		case b.updates <- status:
			return
		default:
			select {
			case <-b.updates:
			default:
			}
		}
	}
}
