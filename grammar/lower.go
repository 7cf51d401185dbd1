package grammar

import (
	"strconv"
	"strings"

	"fortio.org/safecast"

	"qirgen/internal/errors"
	"qirgen/internal/ir"
	"qirgen/internal/types"
)

// lowerer carries the declared register names so bare identifiers can be
// classified as qubit or result references.
type lowerer struct {
	qubitRegs  map[string]bool
	resultRegs map[string]bool
	externals  map[string]bool
}

// Lower converts a parse tree into a semantic model, validating types,
// operation kinds and operand references. Failures are backend
// diagnostics; no partial model is ever returned.
func Lower(p *Program) (*ir.SemanticModel, error) {
	model := &ir.SemanticModel{
		Name:              p.Name,
		StaticQubitAlloc:  true,
		StaticResultAlloc: true,
	}
	if p.Source != nil {
		model.SourceFile = *p.Source
	}
	if p.QubitAlloc != nil {
		model.StaticQubitAlloc = *p.QubitAlloc == "true"
	}
	if p.ResultAlloc != nil {
		model.StaticResultAlloc = *p.ResultAlloc == "true"
	}

	lw := &lowerer{
		qubitRegs:  make(map[string]bool),
		resultRegs: make(map[string]bool),
		externals:  make(map[string]bool),
	}

	model.Qubits = make([]ir.QuantumRegister, 0)
	for _, reg := range p.QRegs {
		if lw.qubitRegs[reg.Name] {
			return nil, errors.Backend("quantum register %q declared twice", reg.Name)
		}
		lw.qubitRegs[reg.Name] = true
		for i := uint64(0); i < reg.Size; i++ {
			model.Qubits = append(model.Qubits, ir.QuantumRegister{Name: reg.Name, Index: i})
		}
	}

	model.Registers = make([]ir.ClassicalRegister, 0, len(p.CRegs))
	for _, reg := range p.CRegs {
		if lw.resultRegs[reg.Name] {
			return nil, errors.Backend("classical register %q declared twice", reg.Name)
		}
		lw.resultRegs[reg.Name] = true
		model.Registers = append(model.Registers, ir.ClassicalRegister{Name: reg.Name, Size: reg.Size})
	}

	model.ExternalFunctions = make([]ir.ExternalFunction, 0, len(p.Externals))
	for _, decl := range p.Externals {
		if lw.externals[decl.Name] {
			return nil, errors.Backend("function %q declared twice", decl.Name)
		}
		lw.externals[decl.Name] = true
		fn, err := lowerSignature(decl)
		if err != nil {
			return nil, err
		}
		model.ExternalFunctions = append(model.ExternalFunctions, ir.ExternalFunction{Name: decl.Name, Type: fn})
	}

	insts, err := lw.lowerInsts(p.Insts)
	if err != nil {
		return nil, err
	}
	if insts == nil {
		insts = make([]ir.Instruction, 0)
	}
	model.Instructions = insts
	return model, nil
}

func lowerSignature(decl *ExternalDecl) (types.Function, error) {
	fn := types.Function{}
	if len(decl.Params) > 0 {
		fn.Params = make([]types.Type, 0, len(decl.Params))
		for _, ref := range decl.Params {
			ty, err := lowerType(ref.Name)
			if err != nil {
				return types.Function{}, err
			}
			fn.Params = append(fn.Params, ty)
		}
	}
	if decl.Return != nil {
		ty, err := lowerType(decl.Return.Name)
		if err != nil {
			return types.Function{}, err
		}
		fn.Return = types.ReturnValue(ty)
	}
	return fn, nil
}

// lowerType resolves a textual type name: i<width>, double, qubit or
// result.
func lowerType(name string) (types.Type, error) {
	switch name {
	case "double":
		return types.Double, nil
	case "qubit":
		return types.Qubit, nil
	case "result":
		return types.Result, nil
	}
	digits, ok := strings.CutPrefix(name, "i")
	if !ok || digits == "" {
		return types.Type{}, errors.Backend("unknown type %q", name)
	}
	wide, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return types.Type{}, errors.Backend("unknown type %q", name)
	}
	width, err := safecast.Conv[uint32](wide)
	if err != nil || width < 1 {
		return types.Type{}, errors.Backend("invalid integer width in type %q", name)
	}
	return types.Integer(width), nil
}

// lowerInsts returns nil for an empty list so empty branch bodies stay
// indistinguishable from builder-produced ones.
func (lw *lowerer) lowerInsts(nodes []*Inst) ([]ir.Instruction, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	insts := make([]ir.Instruction, 0, len(nodes))
	for _, node := range nodes {
		inst, err := lw.lowerInst(node)
		if err != nil {
			return nil, err
		}
		insts = append(insts, inst)
	}
	return insts, nil
}

func (lw *lowerer) lowerInst(node *Inst) (ir.Instruction, error) {
	switch {
	case node.If != nil:
		return lw.lowerIf(node.If)
	case node.Call != nil:
		return lw.lowerCall(node.Call)
	case node.Bin != nil:
		return lw.lowerBin(node.Bin)
	case node.Ctl != nil:
		op, ok := ir.ControlledOpFromString(node.Ctl.Op)
		if !ok {
			return nil, errors.Backend("unknown controlled gate %q", node.Ctl.Op)
		}
		control, err := lw.qubitRef(node.Ctl.Control)
		if err != nil {
			return nil, err
		}
		target, err := lw.qubitRef(node.Ctl.Target)
		if err != nil {
			return nil, err
		}
		return ir.Controlled{Op: op, Control: control, Target: target}, nil
	case node.Rot != nil:
		return lw.lowerRot(node.Rot)
	case node.Measure != nil:
		qubit, err := lw.qubitRef(node.Measure.Qubit)
		if err != nil {
			return nil, err
		}
		target, err := lw.resultRef(node.Measure.Target)
		if err != nil {
			return nil, err
		}
		return ir.Measure{Qubit: qubit, Target: target}, nil
	case node.Single != nil:
		op, ok := ir.SingleOpFromString(node.Single.Op)
		if !ok {
			return nil, errors.Backend("unknown gate %q", node.Single.Op)
		}
		qubit, err := lw.qubitRef(node.Single.Qubit)
		if err != nil {
			return nil, err
		}
		return ir.Single{Op: op, Qubit: qubit}, nil
	}
	return nil, errors.Backend("empty instruction node")
}

func (lw *lowerer) lowerIf(node *IfInst) (ir.Instruction, error) {
	cond, err := lw.resultRef(node.Condition)
	if err != nil {
		return nil, err
	}
	thenInsts, err := lw.lowerInsts(node.Then)
	if err != nil {
		return nil, err
	}
	elseInsts, err := lw.lowerInsts(node.Else)
	if err != nil {
		return nil, err
	}
	return ir.If{Condition: cond, Then: thenInsts, Else: elseInsts}, nil
}

func (lw *lowerer) lowerCall(node *CallInst) (ir.Instruction, error) {
	if !lw.externals[node.Name] {
		return nil, errors.Backend("call to undeclared function %q", node.Name)
	}
	args := make([]ir.Value, len(node.Args))
	for i, arg := range node.Args {
		value, err := lw.lowerOperand(arg)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}
	var result *ir.Variable
	if node.Result != nil {
		v, err := lowerVarRef(node.Result)
		if err != nil {
			return nil, err
		}
		result = &v
	}
	return ir.Call{Name: node.Name, Args: args, Result: result}, nil
}

func (lw *lowerer) lowerBin(node *BinInst) (ir.Instruction, error) {
	kind, ok := ir.BinKindFromString(node.Kind)
	if !ok {
		return nil, errors.Backend("unknown operation %q", node.Kind)
	}
	result, err := lowerVarRef(node.Result)
	if err != nil {
		return nil, err
	}
	lhs, err := lw.lowerOperand(node.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := lw.lowerOperand(node.RHS)
	if err != nil {
		return nil, err
	}
	return ir.BinOp{Kind: kind, LHS: lhs, RHS: rhs, Result: result}, nil
}

func (lw *lowerer) lowerRot(node *RotInst) (ir.Instruction, error) {
	op, ok := ir.RotationOpFromString(node.Op)
	if !ok {
		return nil, errors.Backend("unknown rotation gate %q", node.Op)
	}
	theta, err := lw.lowerOperand(node.Theta)
	if err != nil {
		return nil, err
	}
	if theta.Type() != types.Double {
		return nil, errors.Backend("rotation angle must be double-typed, got %s", theta.Type())
	}
	qubit, err := lw.qubitRef(node.Qubit)
	if err != nil {
		return nil, err
	}
	return ir.Rotated{Op: op, Theta: theta, Qubit: qubit}, nil
}

func (lw *lowerer) lowerOperand(node *Operand) (ir.Value, error) {
	switch {
	case node.Var != nil:
		return lowerVarRef(node.Var)
	case node.Int != nil:
		ty, err := lowerType(node.Int.Type)
		if err != nil {
			return nil, err
		}
		if ty.Kind != types.KindInteger {
			return nil, errors.Backend("literal %d annotated with non-integer type %q", node.Int.Value, node.Int.Type)
		}
		n, ok := ir.NewInt(ty.Width, node.Int.Value)
		if !ok {
			return nil, errors.Backend("literal %d does not fit %s", node.Int.Value, ty)
		}
		return n, nil
	case node.Float != nil:
		return ir.Double(*node.Float), nil
	case node.Ref != nil:
		return lw.classifyRef(*node.Ref)
	}
	return nil, errors.Backend("empty operand node")
}

func lowerVarRef(node *VarRef) (ir.Variable, error) {
	ty, err := lowerType(node.Type)
	if err != nil {
		return ir.Variable{}, err
	}
	return ir.Variable{Ty: ty, ID: node.ID}, nil
}

// classifyRef resolves a bare identifier against the declared register
// names: the identifier is the register name followed by the slot index.
func (lw *lowerer) classifyRef(ref string) (ir.Value, error) {
	base := strings.TrimRight(ref, "0123456789")
	if base == ref {
		return nil, errors.Backend("reference %q carries no slot index", ref)
	}
	if lw.qubitRegs[base] {
		return ir.Qubit(ref), nil
	}
	if lw.resultRegs[base] {
		return ir.Result(ref), nil
	}
	return nil, errors.Backend("reference %q matches no declared register", ref)
}

func (lw *lowerer) qubitRef(ref string) (string, error) {
	value, err := lw.classifyRef(ref)
	if err != nil {
		return "", err
	}
	if _, ok := value.(ir.Qubit); !ok {
		return "", errors.Backend("%q is not a qubit reference", ref)
	}
	return ref, nil
}

func (lw *lowerer) resultRef(ref string) (string, error) {
	value, err := lw.classifyRef(ref)
	if err != nil {
		return "", err
	}
	if _, ok := value.(ir.Result); !ok {
		return "", errors.Backend("%q is not a result reference", ref)
	}
	return ref, nil
}
