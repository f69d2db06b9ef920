package app

import (
	"go.uber.org/zap"

	"github.com/dshills/tally/internal/engine/calc"
	"github.com/dshills/tally/internal/persist"
)

// LoggingObserver writes a structured log line for every committed
// calculation.
type LoggingObserver struct {
	logger *zap.Logger
}

// NewLoggingObserver creates a logging observer.
func NewLoggingObserver(logger *zap.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnCalculation implements dispatch.Observer.
func (o *LoggingObserver) OnCalculation(rec calc.Record) error {
	o.logger.Info("calculation",
		zap.String("id", rec.ID.String()),
		zap.String("operation", rec.Operation),
		zap.String("operand_a", rec.OperandA.String()),
		zap.String("operand_b", rec.OperandB.String()),
		zap.String("result", rec.Result.String()),
		zap.Time("at", rec.Timestamp))
	return nil
}

// Exporter supplies the history for persistence. The calculator facade
// satisfies it.
type Exporter interface {
	ExportRecords() []calc.Record
}

// AutoSaveObserver persists the full history after every committed
// calculation.
type AutoSaveObserver struct {
	path     string
	exporter Exporter

	// saved, when set, is called after each successful write. The app
	// uses it to tell its own writes apart from external ones.
	saved func()
}

// NewAutoSaveObserver creates an auto-save observer writing to path.
func NewAutoSaveObserver(path string, exporter Exporter, saved func()) *AutoSaveObserver {
	return &AutoSaveObserver{path: path, exporter: exporter, saved: saved}
}

// OnCalculation implements dispatch.Observer.
func (o *AutoSaveObserver) OnCalculation(calc.Record) error {
	if err := persist.Save(o.path, o.exporter.ExportRecords()); err != nil {
		return err
	}
	if o.saved != nil {
		o.saved()
	}
	return nil
}
