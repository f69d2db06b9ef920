package dispatch

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/tally/internal/engine/calc"
)

// Notifier delivers committed calculation records to registered
// observers synchronously, in registration order, in the caller's
// goroutine. Each observer is isolated: an error or panic is reported
// via the configured handlers and never prevents later observers from
// running.
type Notifier struct {
	executor     *Executor
	errorHandler ErrorHandler

	mu        sync.RWMutex
	observers []Observer

	// Stats
	dispatched  atomic.Uint64
	succeeded   atomic.Uint64
	failed      atomic.Uint64
	panicked    atomic.Uint64
	totalTimeNs atomic.Int64
}

// NewNotifier creates a new notifier.
func NewNotifier(opts ...NotifierOption) *Notifier {
	n := &Notifier{
		executor: NewExecutor(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithPanicHandler sets the handler called when an observer panics.
func WithPanicHandler(h PanicHandler) NotifierOption {
	return func(n *Notifier) {
		n.executor = NewExecutor(WithExecutorPanicHandler(h))
	}
}

// WithErrorHandler sets the handler called when an observer returns an error.
func WithErrorHandler(h ErrorHandler) NotifierOption {
	return func(n *Notifier) {
		n.errorHandler = h
	}
}

// Register appends an observer. Delivery order equals registration order.
func (n *Notifier) Register(obs Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.observers = append(n.observers, obs)
}

// Len returns the number of registered observers.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

// Notify delivers the record to every registered observer and returns
// per-observer results in registration order. A failing observer is
// skipped for this event only; it stays registered for future events.
func (n *Notifier) Notify(rec calc.Record) []Result {
	n.mu.RLock()
	observers := make([]Observer, len(n.observers))
	copy(observers, n.observers)
	n.mu.RUnlock()

	results := make([]Result, len(observers))
	for i, obs := range observers {
		result := n.executor.Execute(rec, obs)
		results[i] = result

		n.dispatched.Add(1)
		n.totalTimeNs.Add(result.Duration.Nanoseconds())
		switch {
		case result.Panicked:
			n.panicked.Add(1)
		case result.Error != nil:
			n.failed.Add(1)
			if n.errorHandler != nil {
				n.errorHandler(rec, result.Error)
			}
		default:
			n.succeeded.Add(1)
		}
	}

	return results
}

// Stats returns delivery statistics.
// Counters are read without a mutex, so values may be slightly
// inconsistent if read during a Notify call.
func (n *Notifier) Stats() NotifierStats {
	dispatched := n.dispatched.Load()
	totalNs := n.totalTimeNs.Load()

	var avgNs int64
	if dispatched > 0 {
		avgNs = totalNs / int64(dispatched)
	}

	return NotifierStats{
		Dispatched:    dispatched,
		Succeeded:     n.succeeded.Load(),
		Failed:        n.failed.Load(),
		Panicked:      n.panicked.Load(),
		TotalDuration: time.Duration(totalNs),
		AvgDuration:   time.Duration(avgNs),
	}
}

// ResetStats resets all statistics to zero.
func (n *Notifier) ResetStats() {
	n.dispatched.Store(0)
	n.succeeded.Store(0)
	n.failed.Store(0)
	n.panicked.Store(0)
	n.totalTimeNs.Store(0)
}

// NotifierStats contains delivery statistics.
type NotifierStats struct {
	// Dispatched is the total number of observer invocations.
	Dispatched uint64

	// Succeeded is the number of successful invocations.
	Succeeded uint64

	// Failed is the number of observers that returned errors.
	Failed uint64

	// Panicked is the number of observers that panicked.
	Panicked uint64

	// TotalDuration is the cumulative time spent in observers.
	TotalDuration time.Duration

	// AvgDuration is the average observer execution time.
	AvgDuration time.Duration
}
