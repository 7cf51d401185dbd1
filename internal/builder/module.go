package builder

import (
	"strconv"

	"qirgen/internal/ir"
	"qirgen/internal/types"
)

// Register naming convention: qubit and result identifiers are the
// register name concatenated with the dense slot index.
const (
	qubitName  = "qubit"
	resultName = "result"
)

// Function is a handle to a declared external function.
type Function struct {
	name string
}

func (f Function) Name() string { return f.name }

// Qubit is a handle to one declared qubit; equality is by index.
type Qubit struct {
	index uint64
}

func (q Qubit) Index() uint64 { return q.index }

func (q Qubit) id() string { return qubitName + strconv.FormatUint(q.index, 10) }

// Result is a handle to one slot of the result register.
type Result struct {
	index uint64
}

func (r Result) Index() uint64 { return r.index }

func (r Result) id() string { return resultName + strconv.FormatUint(r.index, 10) }

// Module is the program-level view: it owns the register declarations
// and allocation flags, and shares one Builder with any QisBuilder
// constructed over it.
type Module struct {
	model   ir.SemanticModel
	builder *Builder
}

// NewModule declares a program with numQubits qubits and a result
// register of size numResults. Both allocation strategies default to
// static.
func NewModule(name string, numQubits, numResults uint64) *Module {
	qubits := make([]ir.QuantumRegister, 0, numQubits)
	for i := uint64(0); i < numQubits; i++ {
		qubits = append(qubits, ir.QuantumRegister{Name: qubitName, Index: i})
	}
	return &Module{
		model: ir.SemanticModel{
			Name:              name,
			Registers:         []ir.ClassicalRegister{{Name: resultName, Size: numResults}},
			Qubits:            qubits,
			StaticQubitAlloc:  true,
			StaticResultAlloc: true,
		},
		builder: New(),
	}
}

// Builder returns the shared construction state.
func (m *Module) Builder() *Builder { return m.builder }

// Qubits returns one handle per declared qubit, in index order.
func (m *Module) Qubits() []Qubit {
	qubits := make([]Qubit, len(m.model.Qubits))
	for i, q := range m.model.Qubits {
		qubits[i] = Qubit{index: q.Index}
	}
	return qubits
}

// Results returns one handle per slot of the result register.
func (m *Module) Results() []Result {
	size := m.model.Registers[0].Size
	results := make([]Result, 0, size)
	for i := uint64(0); i < size; i++ {
		results = append(results, Result{index: i})
	}
	return results
}

// AddExternalFunction declares a callable external function. The name
// must not have been declared before.
func (m *Module) AddExternalFunction(name string, ty types.Function) (Function, error) {
	if err := m.builder.declareExternal(name, ty); err != nil {
		return Function{}, err
	}
	return Function{name: name}, nil
}

// SetSourceFile records the path of the source program the module was
// generated from. Empty means unknown.
func (m *Module) SetSourceFile(path string) { m.model.SourceFile = path }

func (m *Module) SetStaticQubitAlloc(value bool) { m.model.StaticQubitAlloc = value }

func (m *Module) SetStaticResultAlloc(value bool) { m.model.StaticResultAlloc = value }

// Finish snapshots the build into an immutable semantic model. It fails
// when the frame stack does not hold exactly one frame. The builder
// stays usable afterwards; later appends never reach a returned
// snapshot.
func (m *Module) Finish() (*ir.SemanticModel, error) {
	insts, externals, err := m.builder.finish()
	if err != nil {
		return nil, err
	}
	model := m.model
	model.Qubits = append([]ir.QuantumRegister(nil), m.model.Qubits...)
	model.Registers = append([]ir.ClassicalRegister(nil), m.model.Registers...)
	model.Instructions = insts
	model.ExternalFunctions = externals
	return &model, nil
}
