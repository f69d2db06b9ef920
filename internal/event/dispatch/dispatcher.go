package dispatch

import (
	"time"

	"github.com/dshills/tally/internal/engine/calc"
)

// Observer is the interface for calculation observers. Implementations
// receive each committed record and may fail; failures are isolated by
// the Notifier and never reach the calculation caller. Observers must
// not mutate the record.
type Observer interface {
	OnCalculation(rec calc.Record) error
}

// ObserverFunc adapts an ordinary function to the Observer interface.
type ObserverFunc func(rec calc.Record) error

// OnCalculation calls f.
func (f ObserverFunc) OnCalculation(rec calc.Record) error {
	return f(rec)
}

// Result represents the outcome of one observer invocation.
type Result struct {
	// Success is true if the observer completed without error or panic.
	Success bool

	// Error is the error returned by the observer, if any.
	Error error

	// Panicked is true if the observer panicked.
	Panicked bool

	// PanicValue is the value passed to panic(), if Panicked is true.
	PanicValue any

	// PanicStack is the stack trace at the point of panic.
	PanicStack []byte

	// Duration is how long the observer took to execute.
	Duration time.Duration
}

// IsSuccess returns true if the result indicates successful execution.
func (r Result) IsSuccess() bool {
	return r.Success && !r.Panicked && r.Error == nil
}

// PanicHandler is called when an observer panics. It receives the record
// being delivered, the panic value, and the stack trace.
type PanicHandler func(rec calc.Record, panicValue any, stack []byte)

// ErrorHandler is called when an observer returns an error.
type ErrorHandler func(rec calc.Record, err error)

// defaultPanicHandler is a no-op; the app installs a logging handler.
func defaultPanicHandler(rec calc.Record, panicValue any, stack []byte) {}
