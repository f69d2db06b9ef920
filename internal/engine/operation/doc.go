// Package operation provides the arithmetic operations and the registry
// that resolves them by name.
//
// An Operation is a pure binary function over decimals with its own
// operand-validity rule. The Registry maps case-insensitive names to
// operations and supports runtime registration, so callers can extend
// the operation set without touching the engine.
//
// All operations round their result to the precision they were
// constructed with before returning.
package operation
