package ir

import "fmt"

// Instruction is one step of a base-profile program. The variant set is
// closed and instructions are immutable once appended.
type Instruction interface {
	instruction()
}

// SingleOp enumerates the one-qubit operations, including reset.
type SingleOp uint8

const (
	GateH SingleOp = iota
	GateS
	GateSAdj
	GateT
	GateTAdj
	GateX
	GateY
	GateZ
	GateReset
)

var singleOpNames = [...]string{"h", "s", "s_adj", "t", "t_adj", "x", "y", "z", "reset"}

func (op SingleOp) String() string {
	if int(op) < len(singleOpNames) {
		return singleOpNames[op]
	}
	return fmt.Sprintf("SingleOp(%d)", op)
}

// SingleOpFromString resolves a textual gate name.
func SingleOpFromString(s string) (SingleOp, bool) {
	for i, name := range singleOpNames {
		if name == s {
			return SingleOp(i), true
		}
	}
	return 0, false
}

// ControlledOp enumerates the controlled two-qubit gates.
type ControlledOp uint8

const (
	GateCX ControlledOp = iota
	GateCZ
)

var controlledOpNames = [...]string{"cx", "cz"}

func (op ControlledOp) String() string {
	if int(op) < len(controlledOpNames) {
		return controlledOpNames[op]
	}
	return fmt.Sprintf("ControlledOp(%d)", op)
}

func ControlledOpFromString(s string) (ControlledOp, bool) {
	for i, name := range controlledOpNames {
		if name == s {
			return ControlledOp(i), true
		}
	}
	return 0, false
}

// RotationOp enumerates the value-parameterized rotation gates.
type RotationOp uint8

const (
	GateRX RotationOp = iota
	GateRY
	GateRZ
)

var rotationOpNames = [...]string{"rx", "ry", "rz"}

func (op RotationOp) String() string {
	if int(op) < len(rotationOpNames) {
		return rotationOpNames[op]
	}
	return fmt.Sprintf("RotationOp(%d)", op)
}

func RotationOpFromString(s string) (RotationOp, bool) {
	for i, name := range rotationOpNames {
		if name == s {
			return RotationOp(i), true
		}
	}
	return 0, false
}

// BinKind enumerates the binary operations: bitwise logic, arithmetic,
// shifts, and the ten ordered integer comparison predicates.
type BinKind uint8

const (
	And BinKind = iota
	Or
	Xor
	Add
	Sub
	Mul
	Shl
	LShr
	ICmpEq
	ICmpNe
	ICmpUgt
	ICmpUge
	ICmpUlt
	ICmpUle
	ICmpSgt
	ICmpSge
	ICmpSlt
	ICmpSle
)

var binKindNames = [...]string{
	"and", "or", "xor", "add", "sub", "mul", "shl", "lshr",
	"icmp_eq", "icmp_ne", "icmp_ugt", "icmp_uge", "icmp_ult", "icmp_ule",
	"icmp_sgt", "icmp_sge", "icmp_slt", "icmp_sle",
}

func (k BinKind) String() string {
	if int(k) < len(binKindNames) {
		return binKindNames[k]
	}
	return fmt.Sprintf("BinKind(%d)", k)
}

// IsComparison reports whether the kind is one of the icmp predicates.
func (k BinKind) IsComparison() bool { return k >= ICmpEq && k <= ICmpSle }

func BinKindFromString(s string) (BinKind, bool) {
	for i, name := range binKindNames {
		if name == s {
			return BinKind(i), true
		}
	}
	return 0, false
}

// Single applies a one-qubit gate (or reset) to a qubit.
type Single struct {
	Op    SingleOp
	Qubit string
}

// Controlled applies cx or cz to a control/target qubit pair.
type Controlled struct {
	Op      ControlledOp
	Control string
	Target  string
}

// Rotated applies a rotation gate. Theta must be double-typed.
type Rotated struct {
	Op    RotationOp
	Theta Value
	Qubit string
}

// Measure reads a qubit into a result register slot.
type Measure struct {
	Qubit  string
	Target string
}

// BinOp computes one binary operation into a fresh variable.
type BinOp struct {
	Kind   BinKind
	LHS    Value
	RHS    Value
	Result Variable
}

// Call invokes a declared external function. Result is nil for void
// callees.
type Call struct {
	Name   string
	Args   []Value
	Result *Variable
}

// If branches on a measurement result. Both branch lists are always
// present; an empty branch is an empty list, never a missing one.
type If struct {
	Condition string
	Then      []Instruction
	Else      []Instruction
}

func (Single) instruction()     {}
func (Controlled) instruction() {}
func (Rotated) instruction()    {}
func (Measure) instruction()    {}
func (BinOp) instruction()      {}
func (Call) instruction()       {}
func (If) instruction()         {}
