// Package calc defines the calculation record, the immutable value
// describing one executed arithmetic operation.
package calc

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record captures a single executed operation with its operands and result.
// Records are never mutated after construction; snapshots and history copies
// rely on that.
type Record struct {
	// ID uniquely identifies the record within a session.
	ID uuid.UUID

	// Operation is the registered name the operation was resolved under.
	Operation string

	// OperandA and OperandB are the inputs, in call order.
	OperandA decimal.Decimal
	OperandB decimal.Decimal

	// Result is computed once at creation and never recomputed.
	Result decimal.Decimal

	// Timestamp is when the operation was committed.
	Timestamp time.Time
}

// New creates a record for a completed operation.
func New(operation string, a, b, result decimal.Decimal) Record {
	return Record{
		ID:        uuid.New(),
		Operation: operation,
		OperandA:  a,
		OperandB:  b,
		Result:    result,
		Timestamp: time.Now(),
	}
}

// Equal reports whether two records describe the same calculation.
// Comparison is by operation name and decimal value, so 2 equals 2.0.
// ID and timestamp are identity metadata and do not participate.
func (r Record) Equal(other Record) bool {
	return r.Operation == other.Operation &&
		r.OperandA.Equal(other.OperandA) &&
		r.OperandB.Equal(other.OperandB) &&
		r.Result.Equal(other.Result)
}

// String renders the record the way the history listing shows it.
func (r Record) String() string {
	return fmt.Sprintf("%s(%s, %s) = %s", r.Operation, r.OperandA, r.OperandB, r.Result)
}
