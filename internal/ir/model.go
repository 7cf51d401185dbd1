package ir

import (
	"strconv"

	"qirgen/internal/types"
)

// QuantumRegister declares one qubit slot. Indices are dense and start
// at 0 within a program.
type QuantumRegister struct {
	Name  string
	Index uint64
}

// ID derives the opaque identifier instructions reference for this slot.
func (q QuantumRegister) ID() string {
	return q.Name + strconv.FormatUint(q.Index, 10)
}

// ClassicalRegister declares the capacity of a measurement-result
// register.
type ClassicalRegister struct {
	Name string
	Size uint64
}

// ID derives the opaque identifier of one slot of the register.
func (c ClassicalRegister) ID(index uint64) string {
	return c.Name + strconv.FormatUint(index, 10)
}

// ExternalFunction pairs a declared callee name with its signature.
type ExternalFunction struct {
	Name string
	Type types.Function
}

// SemanticModel is the finished program handed to a backend: register
// declarations, external functions, the finalized instruction list and
// the allocation-strategy flags (passed through, never interpreted here).
type SemanticModel struct {
	Name              string
	SourceFile        string
	Registers         []ClassicalRegister
	Qubits            []QuantumRegister
	Instructions      []Instruction
	StaticQubitAlloc  bool
	StaticResultAlloc bool
	ExternalFunctions []ExternalFunction
}
