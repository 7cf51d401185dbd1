package ir

import (
	"math/bits"

	"qirgen/internal/types"
)

// Value is one operand of an instruction: a literal, a register reference
// or a builder-allocated variable. The variant set is closed.
type Value interface {
	Type() types.Type
	value()
}

// Int is a width-checked integer literal. Construct through NewInt only.
type Int struct {
	width uint32
	val   uint64
}

// NewInt builds an integer literal, reporting ok=false when value needs
// more than width significant bits. A zero value fits any width >= 1.
func NewInt(width uint32, value uint64) (Int, bool) {
	if uint32(bits.Len64(value)) > width {
		return Int{}, false
	}
	return Int{width: width, val: value}, true
}

func (i Int) Width() uint32 { return i.width }

func (i Int) Value() uint64 { return i.val }

func (i Int) Type() types.Type { return types.Integer(i.width) }

func (Int) value() {}

// Double is a float literal.
type Double float64

func (Double) Type() types.Type { return types.Double }

func (Double) value() {}

// Qubit is the opaque identifier of a declared qubit. Two qubit values
// carrying the same identifier are indistinguishable to a backend.
type Qubit string

func (Qubit) Type() types.Type { return types.Qubit }

func (Qubit) value() {}

// Result is the opaque identifier of one slot of a result register.
type Result string

func (Result) Type() types.Type { return types.Result }

func (Result) value() {}

// Variable is an SSA-style operation result: written exactly once, never
// reassigned. Identity is (type, id); ids advance monotonically per build
// and are allocated only by the builder, never by callers.
type Variable struct {
	Ty types.Type
	ID uint64
}

func (v Variable) Type() types.Type { return v.Ty }

func (Variable) value() {}

// Next returns the successor variable of the given type.
func (v Variable) Next(ty types.Type) Variable {
	return Variable{Ty: ty, ID: v.ID + 1}
}
