// Package calculator provides the calculation engine facade: the
// perform pipeline, undo/redo, observer registration, and the
// persistence snapshot contract.
package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dshills/tally/internal/config"
	"github.com/dshills/tally/internal/engine/calc"
	"github.com/dshills/tally/internal/engine/history"
	"github.com/dshills/tally/internal/engine/operation"
	"github.com/dshills/tally/internal/event/dispatch"
)

// ErrInputRange is returned when an operand magnitude exceeds the
// configured maximum input value.
var ErrInputRange = errors.New("operand exceeds maximum input value")

// Calculator coordinates the operation registry, the bounded history
// store, the undo/redo manager, and observer notification. One instance
// serves one session; all methods run on the caller's goroutine.
type Calculator struct {
	precision int32
	maxInput  decimal.Decimal

	registry *operation.Registry
	store    *history.Store
	mementos *history.Manager
	notifier *dispatch.Notifier
	logger   *zap.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used for commit traces and observer
// failure reports.
func WithLogger(l *zap.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRegistry replaces the default operation registry.
func WithRegistry(r *operation.Registry) Option {
	return func(c *Calculator) {
		if r != nil {
			c.registry = r
		}
	}
}

// New creates a calculator from an immutable configuration snapshot.
// The default registry carries the six standard operations rounding to
// the configured precision.
func New(cfg *config.Config, opts ...Option) *Calculator {
	c := &Calculator{
		precision: int32(cfg.Precision),
		maxInput:  cfg.MaxInputValue,
		registry:  operation.NewDefaultRegistry(int32(cfg.Precision)),
		store:     history.NewStore(cfg.MaxHistorySize),
		mementos:  history.NewManager(cfg.MaxHistorySize),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.notifier = dispatch.NewNotifier(
		dispatch.WithErrorHandler(func(rec calc.Record, err error) {
			c.logger.Warn("observer failed",
				zap.String("record", rec.String()),
				zap.Error(err))
		}),
		dispatch.WithPanicHandler(func(rec calc.Record, v any, stack []byte) {
			c.logger.Error("observer panic",
				zap.String("record", rec.String()),
				zap.Any("panic", v),
				zap.ByteString("stack", stack))
		}),
	)
	return c
}

// Perform executes a named operation on two operands.
//
// Validation and computation happen before any state mutation, so a
// failed calculation leaves the history and both undo/redo stacks
// untouched. On success the pre-mutation state is snapshotted, the new
// record appended (evicting the oldest past capacity), and observers
// notified in registration order.
func (c *Calculator) Perform(name string, a, b decimal.Decimal) (calc.Record, error) {
	if err := c.checkRange(a); err != nil {
		return calc.Record{}, err
	}
	if err := c.checkRange(b); err != nil {
		return calc.Record{}, err
	}

	op, err := c.registry.Resolve(name)
	if err != nil {
		return calc.Record{}, err
	}

	result, err := op.Apply(a, b)
	if err != nil {
		return calc.Record{}, err
	}

	rec := calc.New(normalize(name), a, b, result)

	// Commit: snapshot push and append form one atomic step.
	c.mementos.Commit(c.store)
	c.store.Append(rec)

	c.notifier.Notify(rec)

	c.logger.Debug("calculation committed",
		zap.String("record", rec.String()),
		zap.Int("history_len", c.store.Len()))
	return rec, nil
}

// Undo restores the history to its state before the last commit.
func (c *Calculator) Undo() error {
	return c.mementos.Undo(c.store)
}

// Redo reapplies the most recently undone state.
func (c *Calculator) Redo() error {
	return c.mementos.Redo(c.store)
}

// ClearHistory empties the history as an undoable operation.
func (c *Calculator) ClearHistory() {
	c.mementos.Clear(c.store)
}

// CanUndo returns true if undo is available.
func (c *Calculator) CanUndo() bool {
	return c.mementos.CanUndo()
}

// CanRedo returns true if redo is available.
func (c *Calculator) CanRedo() bool {
	return c.mementos.CanRedo()
}

// History returns a copy of the session records in chronological order.
func (c *Calculator) History() []calc.Record {
	return c.store.Records()
}

// Observe registers an observer for committed calculations.
func (c *Calculator) Observe(obs dispatch.Observer) {
	c.notifier.Register(obs)
}

// RegisterOperation adds or overwrites an operation at runtime.
func (c *Calculator) RegisterOperation(name string, op operation.Operation) {
	c.registry.Register(name, op)
}

// Operations returns the registered operation names, sorted.
func (c *Calculator) Operations() []string {
	return c.registry.Names()
}

// Stats returns observer delivery statistics.
func (c *Calculator) Stats() dispatch.NotifierStats {
	return c.notifier.Stats()
}

// ExportRecords returns the history for external persistence.
func (c *Calculator) ExportRecords() []calc.Record {
	return c.store.Records()
}

// ImportRecords replaces the history store contents. The undo/redo
// stacks are left untouched; imported history does not merge with the
// session's undo past.
func (c *Calculator) ImportRecords(records []calc.Record) {
	c.store.Replace(records)
}

// checkRange rejects operands whose magnitude exceeds the configured bound.
func (c *Calculator) checkRange(v decimal.Decimal) error {
	if v.Abs().GreaterThan(c.maxInput) {
		return fmt.Errorf("%w: %s (max %s)", ErrInputRange, v, c.maxInput)
	}
	return nil
}

// normalize is how operation names are recorded.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
