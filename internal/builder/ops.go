package builder

import (
	"qirgen/internal/errors"
	"qirgen/internal/ir"
	"qirgen/internal/types"
)

// pushBinOp allocates the result variable and appends one BinOp.
// Comparisons yield an i1-typed result; every other kind takes the lhs
// type. Operand types are not cross-checked against each other; a
// mismatched pair surfaces in the backend.
func (b *Builder) pushBinOp(kind ir.BinKind, lhs, rhs ir.Value) ir.Value {
	ty := lhs.Type()
	if kind.IsComparison() {
		ty = types.Bool()
	}
	result := b.fresh(ty)
	b.pushInstruction(ir.BinOp{Kind: kind, LHS: lhs, RHS: rhs, Result: result})
	return result
}

func (b *Builder) binary(kind ir.BinKind, lhs, rhs Operand) (ir.Value, error) {
	lv, rv, err := binaryOperands(lhs, rhs)
	if err != nil {
		return nil, err
	}
	return b.pushBinOp(kind, lv, rv), nil
}

// Neg negates an integer value by subtracting it from a zero literal of
// the same width.
func (b *Builder) Neg(value ir.Value) (ir.Value, error) {
	ty := value.Type()
	if ty.Kind != types.KindInteger {
		return nil, errors.TypeMismatch("negation needs an integer value, got %s", ty)
	}
	zero, _ := ir.NewInt(ty.Width, 0)
	return b.pushBinOp(ir.Sub, zero, value), nil
}

func (b *Builder) And(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.And, lhs, rhs) }

func (b *Builder) Or(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.Or, lhs, rhs) }

func (b *Builder) Xor(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.Xor, lhs, rhs) }

func (b *Builder) Add(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.Add, lhs, rhs) }

func (b *Builder) Sub(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.Sub, lhs, rhs) }

func (b *Builder) Mul(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.Mul, lhs, rhs) }

func (b *Builder) Shl(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.Shl, lhs, rhs) }

func (b *Builder) LShr(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.LShr, lhs, rhs) }

func (b *Builder) ICmpEq(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.ICmpEq, lhs, rhs) }

func (b *Builder) ICmpNe(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.ICmpNe, lhs, rhs) }

func (b *Builder) ICmpUgt(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.ICmpUgt, lhs, rhs) }

func (b *Builder) ICmpUge(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.ICmpUge, lhs, rhs) }

func (b *Builder) ICmpUlt(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.ICmpUlt, lhs, rhs) }

func (b *Builder) ICmpUle(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.ICmpUle, lhs, rhs) }

func (b *Builder) ICmpSgt(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.ICmpSgt, lhs, rhs) }

func (b *Builder) ICmpSge(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.ICmpSge, lhs, rhs) }

func (b *Builder) ICmpSlt(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.ICmpSlt, lhs, rhs) }

func (b *Builder) ICmpSle(lhs, rhs Operand) (ir.Value, error) { return b.binary(ir.ICmpSle, lhs, rhs) }

// Call appends a call to a declared external function. The argument
// count must match the declared arity exactly; each argument is coerced
// against its parameter type in order. Void callees yield a nil value,
// value-returning callees allocate one fresh variable of the declared
// return type. A failed call appends nothing.
func (b *Builder) Call(fn Function, args ...Operand) (ir.Value, error) {
	ty, ok := b.lookupExternal(fn.Name())
	if !ok {
		return nil, errors.UnknownCallee(fn.Name())
	}
	if len(args) != ty.Arity() {
		return nil, errors.ArityMismatch(fn.Name(), ty.Arity(), len(args))
	}
	coerced := make([]ir.Value, len(args))
	for i, arg := range args {
		v, err := coerce(arg, ty.Params[i])
		if err != nil {
			return nil, err
		}
		coerced[i] = v
	}
	var result *ir.Variable
	if ty.Return.HasValue {
		v := b.fresh(ty.Return.Type)
		result = &v
	}
	b.pushInstruction(ir.Call{Name: fn.Name(), Args: coerced, Result: result})
	if result == nil {
		return nil, nil
	}
	return *result, nil
}
