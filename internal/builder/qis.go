package builder

import (
	"qirgen/internal/ir"
	"qirgen/internal/types"
)

// QisBuilder is the gate-level view over a shared Builder. It appends
// quantum-instruction-set operations to whatever frame is currently
// active, so it composes transparently with conditional construction.
type QisBuilder struct {
	builder *Builder
}

// NewQisBuilder wraps the builder shared with a Module.
func NewQisBuilder(b *Builder) *QisBuilder {
	return &QisBuilder{builder: b}
}

func (q *QisBuilder) single(op ir.SingleOp, target Qubit) {
	q.builder.pushInstruction(ir.Single{Op: op, Qubit: target.id()})
}

func (q *QisBuilder) controlled(op ir.ControlledOp, control, target Qubit) {
	q.builder.pushInstruction(ir.Controlled{Op: op, Control: control.id(), Target: target.id()})
}

// rotate coerces theta against the double type and appends one rotation.
func (q *QisBuilder) rotate(op ir.RotationOp, theta Operand, target Qubit) error {
	value, err := coerce(theta, types.Double)
	if err != nil {
		return err
	}
	q.builder.pushInstruction(ir.Rotated{Op: op, Theta: value, Qubit: target.id()})
	return nil
}

func (q *QisBuilder) CX(control, target Qubit) { q.controlled(ir.GateCX, control, target) }

func (q *QisBuilder) CZ(control, target Qubit) { q.controlled(ir.GateCZ, control, target) }

func (q *QisBuilder) H(target Qubit) { q.single(ir.GateH, target) }

// M measures a qubit into a result register slot.
func (q *QisBuilder) M(qubit Qubit, target Result) {
	q.builder.pushInstruction(ir.Measure{Qubit: qubit.id(), Target: target.id()})
}

func (q *QisBuilder) Reset(target Qubit) { q.single(ir.GateReset, target) }

func (q *QisBuilder) RX(theta Operand, target Qubit) error { return q.rotate(ir.GateRX, theta, target) }

func (q *QisBuilder) RY(theta Operand, target Qubit) error { return q.rotate(ir.GateRY, theta, target) }

func (q *QisBuilder) RZ(theta Operand, target Qubit) error { return q.rotate(ir.GateRZ, theta, target) }

func (q *QisBuilder) S(target Qubit) { q.single(ir.GateS, target) }

func (q *QisBuilder) SAdj(target Qubit) { q.single(ir.GateSAdj, target) }

func (q *QisBuilder) T(target Qubit) { q.single(ir.GateT, target) }

func (q *QisBuilder) TAdj(target Qubit) { q.single(ir.GateTAdj, target) }

func (q *QisBuilder) X(target Qubit) { q.single(ir.GateX, target) }

func (q *QisBuilder) Y(target Qubit) { q.single(ir.GateY, target) }

func (q *QisBuilder) Z(target Qubit) { q.single(ir.GateZ, target) }

// IfResult appends one two-branch conditional on a measurement result.
// Both callbacks run immediately, in order, to collect their branch
// bodies; this is IR construction, not execution, so there is no
// short-circuiting. A nil callback leaves that branch empty. A callback
// failure aborts the conditional before anything is appended, with the
// frame it pushed already popped.
func (q *QisBuilder) IfResult(cond Result, one, zero func() error) error {
	thenInsts, err := q.builder.inFrame(one)
	if err != nil {
		return err
	}
	elseInsts, err := q.builder.inFrame(zero)
	if err != nil {
		return err
	}
	q.builder.pushInstruction(ir.If{Condition: cond.id(), Then: thenInsts, Else: elseInsts})
	return nil
}
