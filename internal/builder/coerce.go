package builder

import (
	"qirgen/internal/errors"
	"qirgen/internal/ir"
	"qirgen/internal/types"
)

// Operand is a caller-supplied "value or literal": an ir.Value produced
// by a previous operation, a Qubit/Result handle, or a raw Go literal.
// The accepted raw representations per value type are enumerated in
// coerce; no reflection beyond the type switch is performed.
type Operand any

// coerce interprets op against the expected type. A typed ir.Value
// passes through unchanged: its own type, not want, drives downstream
// behavior. Raw literals are converted by expected type; qubit and
// result references are never coerced from numbers.
func coerce(op Operand, want types.Type) (ir.Value, error) {
	if v, ok := op.(ir.Value); ok {
		return v, nil
	}
	switch want.Kind {
	case types.KindInteger:
		u, ok := toUint64(op)
		if !ok {
			return nil, errors.TypeMismatch("expected an unsigned integer for %s, got %T", want, op)
		}
		n, ok := ir.NewInt(want.Width, u)
		if !ok {
			return nil, errors.Overflow(want.Width, u)
		}
		return n, nil
	case types.KindDouble:
		f, ok := op.(float64)
		if !ok {
			return nil, errors.TypeMismatch("expected a double, got %T", op)
		}
		return ir.Double(f), nil
	case types.KindQubit:
		q, ok := op.(Qubit)
		if !ok {
			return nil, errors.TypeMismatch("expected a qubit reference, got %T", op)
		}
		return ir.Qubit(q.id()), nil
	case types.KindResult:
		r, ok := op.(Result)
		if !ok {
			return nil, errors.TypeMismatch("expected a result reference, got %T", op)
		}
		return ir.Result(r.id()), nil
	}
	return nil, errors.TypeMismatch("unsupported value type %s", want)
}

// toUint64 accepts the native integer representations usable as integer
// literals. Negative values never fit the unsigned literal model.
func toUint64(op Operand) (uint64, bool) {
	switch n := op.(type) {
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case uint64:
		return n, true
	}
	return 0, false
}

// binaryOperands resolves an operand pair of which at least one side
// must already be a typed value; the other side is coerced to that
// side's type.
func binaryOperands(lhs, rhs Operand) (ir.Value, ir.Value, error) {
	if lv, ok := lhs.(ir.Value); ok {
		rv, err := coerce(rhs, lv.Type())
		if err != nil {
			return nil, nil, err
		}
		return lv, rv, nil
	}
	if rv, ok := rhs.(ir.Value); ok {
		lv, err := coerce(lhs, rv.Type())
		if err != nil {
			return nil, nil, err
		}
		return lv, rv, nil
	}
	return nil, nil, errors.TypeMismatch("at least one operand must be a typed value")
}
