package operation

import (
	"github.com/shopspring/decimal"
)

// Canonical operation names.
const (
	NameAdd      = "add"
	NameSubtract = "subtract"
	NameMultiply = "multiply"
	NameDivide   = "divide"
	NamePower    = "power"
	NameRoot     = "root"
)

// Operation is a pure binary arithmetic function. Apply returns
// ErrDivisionByZero or a DomainError when the operands are outside the
// operation's domain; it never mutates its receiver.
type Operation interface {
	Apply(a, b decimal.Decimal) (decimal.Decimal, error)
}

// Func adapts an ordinary function to the Operation interface.
type Func func(a, b decimal.Decimal) (decimal.Decimal, error)

// Apply calls f.
func (f Func) Apply(a, b decimal.Decimal) (decimal.Decimal, error) {
	return f(a, b)
}

// extraDigits is the working precision margin used for power and root so
// that rounding to the configured precision lands on exact values
// (e.g. root(27, 3) = 3, not 2.9999...).
const extraDigits = 8

var two = decimal.NewFromInt(2)

// Addition computes a + b.
type Addition struct {
	precision int32
}

// NewAddition creates an addition operation rounding to the given precision.
func NewAddition(precision int32) Addition {
	return Addition{precision: precision}
}

// Apply implements Operation.
func (o Addition) Apply(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Add(b).Round(o.precision), nil
}

// Subtraction computes a - b.
type Subtraction struct {
	precision int32
}

// NewSubtraction creates a subtraction operation rounding to the given precision.
func NewSubtraction(precision int32) Subtraction {
	return Subtraction{precision: precision}
}

// Apply implements Operation.
func (o Subtraction) Apply(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Sub(b).Round(o.precision), nil
}

// Multiplication computes a * b.
type Multiplication struct {
	precision int32
}

// NewMultiplication creates a multiplication operation rounding to the given precision.
func NewMultiplication(precision int32) Multiplication {
	return Multiplication{precision: precision}
}

// Apply implements Operation.
func (o Multiplication) Apply(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Mul(b).Round(o.precision), nil
}

// Division computes a / b and rejects b == 0.
type Division struct {
	precision int32
}

// NewDivision creates a division operation rounding to the given precision.
func NewDivision(precision int32) Division {
	return Division{precision: precision}
}

// Apply implements Operation.
func (o Division) Apply(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Decimal{}, ErrDivisionByZero
	}
	return a.DivRound(b, o.precision), nil
}

// Power computes a ** b with real-number semantics.
// Zero raised to a negative exponent and a negative base with a
// fractional exponent have no real result and fail with a DomainError.
type Power struct {
	precision int32
}

// NewPower creates a power operation rounding to the given precision.
func NewPower(precision int32) Power {
	return Power{precision: precision}
}

// Apply implements Operation.
func (o Power) Apply(a, b decimal.Decimal) (decimal.Decimal, error) {
	if a.IsZero() && b.IsNegative() {
		return decimal.Decimal{}, newDomainError(NamePower, "zero base with negative exponent")
	}
	if a.IsNegative() && !b.IsInteger() {
		return decimal.Decimal{}, newDomainError(NamePower, "negative base with fractional exponent")
	}

	result, err := a.PowWithPrecision(b, o.precision+extraDigits)
	if err != nil {
		return decimal.Decimal{}, newDomainError(NamePower, err.Error())
	}
	return result.Round(o.precision), nil
}

// Root computes the nth root of a, where b is the degree n.
// A zero degree, and an even root of a negative number, fail with a
// DomainError. Odd integer degrees of negative numbers follow real-number
// semantics: root(-27, 3) = -3.
type Root struct {
	precision int32
}

// NewRoot creates a root operation rounding to the given precision.
func NewRoot(precision int32) Root {
	return Root{precision: precision}
}

// Apply implements Operation.
func (o Root) Apply(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Decimal{}, newDomainError(NameRoot, "zero degree")
	}

	negative := a.IsNegative()
	if negative {
		if !b.IsInteger() {
			return decimal.Decimal{}, newDomainError(NameRoot, "negative radicand with fractional degree")
		}
		if b.Mod(two).IsZero() {
			return decimal.Decimal{}, newDomainError(NameRoot, "even root of negative number")
		}
		a = a.Neg()
	}

	exponent := decimal.NewFromInt(1).DivRound(b, o.precision+2*extraDigits)
	result, err := a.PowWithPrecision(exponent, o.precision+extraDigits)
	if err != nil {
		return decimal.Decimal{}, newDomainError(NameRoot, err.Error())
	}

	result = result.Round(o.precision)
	if negative {
		result = result.Neg()
	}
	return result, nil
}
