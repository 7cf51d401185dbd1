// Package bitcode implements the binary form of a semantic model: a
// versioned msgpack envelope. The binary and textual forms are
// interchangeable; both decode back to the same model.
package bitcode

import (
	"github.com/vmihailenco/msgpack/v5"

	"qirgen/internal/errors"
	"qirgen/internal/ir"
	"qirgen/internal/types"
)

// schemaVersion identifies the envelope layout. Bump on any
// incompatible payload change.
const schemaVersion uint16 = 1

type payload struct {
	Version     uint16            `msgpack:"v"`
	Name        string            `msgpack:"name"`
	Source      string            `msgpack:"src,omitempty"`
	Qubits      []qubitPayload    `msgpack:"qubits"`
	Registers   []registerPayload `msgpack:"registers"`
	QubitAlloc  bool              `msgpack:"static_qubit_alloc"`
	ResultAlloc bool              `msgpack:"static_result_alloc"`
	Externals   []externalPayload `msgpack:"externals"`
	Insts       []instPayload     `msgpack:"insts"`
}

type qubitPayload struct {
	Name  string `msgpack:"name"`
	Index uint64 `msgpack:"index"`
}

type registerPayload struct {
	Name string `msgpack:"name"`
	Size uint64 `msgpack:"size"`
}

type typePayload struct {
	Kind  uint8  `msgpack:"kind"`
	Width uint32 `msgpack:"width,omitempty"`
}

type externalPayload struct {
	Name   string        `msgpack:"name"`
	Params []typePayload `msgpack:"params"`
	Return *typePayload  `msgpack:"return,omitempty"`
}

// Value variant tags.
const (
	valueInt uint8 = iota
	valueDouble
	valueQubit
	valueResult
	valueVariable
)

type valuePayload struct {
	Variant uint8      `msgpack:"variant"`
	Width   uint32     `msgpack:"width,omitempty"`
	Int     uint64     `msgpack:"int,omitempty"`
	Float   float64    `msgpack:"float,omitempty"`
	Ref     string     `msgpack:"ref,omitempty"`
	Var     varPayload `msgpack:"var"`
}

type varPayload struct {
	Type typePayload `msgpack:"type"`
	ID   uint64      `msgpack:"id"`
}

// Instruction opcodes. 0 through 8 match the single-qubit gate order.
const (
	opH uint8 = iota
	opS
	opSAdj
	opT
	opTAdj
	opX
	opY
	opZ
	opReset
	opCX
	opCZ
	opRX
	opRY
	opRZ
	opM
	opBin
	opCall
	opIf
)

type instPayload struct {
	Op      uint8          `msgpack:"op"`
	Qubit   string         `msgpack:"qubit,omitempty"`
	Control string         `msgpack:"control,omitempty"`
	Target  string         `msgpack:"target,omitempty"`
	Theta   *valuePayload  `msgpack:"theta,omitempty"`
	Kind    uint8          `msgpack:"kind,omitempty"`
	LHS     *valuePayload  `msgpack:"lhs,omitempty"`
	RHS     *valuePayload  `msgpack:"rhs,omitempty"`
	Result  *varPayload    `msgpack:"result,omitempty"`
	Name    string         `msgpack:"name,omitempty"`
	Args    []valuePayload `msgpack:"args"`
	Cond    string         `msgpack:"cond,omitempty"`
	Then    []instPayload  `msgpack:"then,omitempty"`
	Else    []instPayload  `msgpack:"else,omitempty"`
}

// Encode serializes a semantic model into the binary form.
func Encode(model *ir.SemanticModel) ([]byte, error) {
	p := payload{
		Version:     schemaVersion,
		Name:        model.Name,
		Source:      model.SourceFile,
		QubitAlloc:  model.StaticQubitAlloc,
		ResultAlloc: model.StaticResultAlloc,
	}

	p.Qubits = make([]qubitPayload, len(model.Qubits))
	for i, q := range model.Qubits {
		p.Qubits[i] = qubitPayload{Name: q.Name, Index: q.Index}
	}
	p.Registers = make([]registerPayload, len(model.Registers))
	for i, reg := range model.Registers {
		p.Registers[i] = registerPayload{Name: reg.Name, Size: reg.Size}
	}
	p.Externals = make([]externalPayload, len(model.ExternalFunctions))
	for i, fn := range model.ExternalFunctions {
		p.Externals[i] = encodeExternal(fn)
	}

	insts, err := encodeInsts(model.Instructions)
	if err != nil {
		return nil, err
	}
	if insts == nil {
		insts = make([]instPayload, 0)
	}
	p.Insts = insts

	data, err := msgpack.Marshal(&p)
	if err != nil {
		return nil, errors.Backend("bitcode marshal failed: %v", err)
	}
	return data, nil
}

// Decode deserializes the binary form back into a semantic model.
func Decode(data []byte) (*ir.SemanticModel, error) {
	var p payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, errors.Backend("bitcode unmarshal failed: %v", err)
	}
	if p.Version != schemaVersion {
		return nil, errors.Backend("unsupported bitcode version %d, want %d", p.Version, schemaVersion)
	}

	model := &ir.SemanticModel{
		Name:              p.Name,
		SourceFile:        p.Source,
		StaticQubitAlloc:  p.QubitAlloc,
		StaticResultAlloc: p.ResultAlloc,
	}

	model.Qubits = make([]ir.QuantumRegister, len(p.Qubits))
	for i, q := range p.Qubits {
		model.Qubits[i] = ir.QuantumRegister{Name: q.Name, Index: q.Index}
	}
	model.Registers = make([]ir.ClassicalRegister, len(p.Registers))
	for i, reg := range p.Registers {
		model.Registers[i] = ir.ClassicalRegister{Name: reg.Name, Size: reg.Size}
	}
	model.ExternalFunctions = make([]ir.ExternalFunction, len(p.Externals))
	for i, ext := range p.Externals {
		fn, err := decodeExternal(ext)
		if err != nil {
			return nil, err
		}
		model.ExternalFunctions[i] = fn
	}

	insts, err := decodeInsts(p.Insts)
	if err != nil {
		return nil, err
	}
	if insts == nil {
		insts = make([]ir.Instruction, 0)
	}
	model.Instructions = insts
	return model, nil
}

func encodeExternal(fn ir.ExternalFunction) externalPayload {
	ext := externalPayload{Name: fn.Name}
	if len(fn.Type.Params) > 0 {
		ext.Params = make([]typePayload, len(fn.Type.Params))
		for i, ty := range fn.Type.Params {
			ext.Params[i] = encodeType(ty)
		}
	}
	if fn.Type.Return.HasValue {
		ret := encodeType(fn.Type.Return.Type)
		ext.Return = &ret
	}
	return ext
}

func decodeExternal(ext externalPayload) (ir.ExternalFunction, error) {
	fn := ir.ExternalFunction{Name: ext.Name}
	if len(ext.Params) > 0 {
		fn.Type.Params = make([]types.Type, len(ext.Params))
		for i, ty := range ext.Params {
			decoded, err := decodeType(ty)
			if err != nil {
				return ir.ExternalFunction{}, err
			}
			fn.Type.Params[i] = decoded
		}
	}
	if ext.Return != nil {
		ty, err := decodeType(*ext.Return)
		if err != nil {
			return ir.ExternalFunction{}, err
		}
		fn.Type.Return = types.ReturnValue(ty)
	}
	return fn, nil
}

func encodeType(ty types.Type) typePayload {
	return typePayload{Kind: uint8(ty.Kind), Width: ty.Width}
}

func decodeType(p typePayload) (types.Type, error) {
	kind := types.Kind(p.Kind)
	switch kind {
	case types.KindInteger:
		if p.Width < 1 {
			return types.Type{}, errors.Backend("integer type with width %d", p.Width)
		}
		return types.Integer(p.Width), nil
	case types.KindDouble:
		return types.Double, nil
	case types.KindQubit:
		return types.Qubit, nil
	case types.KindResult:
		return types.Result, nil
	}
	return types.Type{}, errors.Backend("unknown type kind %d", p.Kind)
}

func encodeValue(v ir.Value) (valuePayload, error) {
	switch v := v.(type) {
	case ir.Int:
		return valuePayload{Variant: valueInt, Width: v.Width(), Int: v.Value()}, nil
	case ir.Double:
		return valuePayload{Variant: valueDouble, Float: float64(v)}, nil
	case ir.Qubit:
		return valuePayload{Variant: valueQubit, Ref: string(v)}, nil
	case ir.Result:
		return valuePayload{Variant: valueResult, Ref: string(v)}, nil
	case ir.Variable:
		return valuePayload{Variant: valueVariable, Var: varPayload{Type: encodeType(v.Ty), ID: v.ID}}, nil
	}
	return valuePayload{}, errors.Backend("cannot encode value %T", v)
}

func decodeValue(p valuePayload) (ir.Value, error) {
	switch p.Variant {
	case valueInt:
		n, ok := ir.NewInt(p.Width, p.Int)
		if !ok {
			return nil, errors.Backend("literal %d does not fit %d bits", p.Int, p.Width)
		}
		return n, nil
	case valueDouble:
		return ir.Double(p.Float), nil
	case valueQubit:
		return ir.Qubit(p.Ref), nil
	case valueResult:
		return ir.Result(p.Ref), nil
	case valueVariable:
		v, err := decodeVariable(p.Var)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, errors.Backend("unknown value variant %d", p.Variant)
}

func decodeVariable(p varPayload) (ir.Variable, error) {
	ty, err := decodeType(p.Type)
	if err != nil {
		return ir.Variable{}, err
	}
	return ir.Variable{Ty: ty, ID: p.ID}, nil
}

func encodeInsts(insts []ir.Instruction) ([]instPayload, error) {
	if len(insts) == 0 {
		return nil, nil
	}
	out := make([]instPayload, 0, len(insts))
	for _, inst := range insts {
		p, err := encodeInst(inst)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func encodeInst(inst ir.Instruction) (instPayload, error) {
	switch inst := inst.(type) {
	case ir.Single:
		return instPayload{Op: uint8(inst.Op), Qubit: inst.Qubit}, nil
	case ir.Controlled:
		op := opCX
		if inst.Op == ir.GateCZ {
			op = opCZ
		}
		return instPayload{Op: op, Control: inst.Control, Target: inst.Target}, nil
	case ir.Rotated:
		theta, err := encodeValue(inst.Theta)
		if err != nil {
			return instPayload{}, err
		}
		return instPayload{Op: opRX + uint8(inst.Op), Theta: &theta, Qubit: inst.Qubit}, nil
	case ir.Measure:
		return instPayload{Op: opM, Qubit: inst.Qubit, Target: inst.Target}, nil
	case ir.BinOp:
		lhs, err := encodeValue(inst.LHS)
		if err != nil {
			return instPayload{}, err
		}
		rhs, err := encodeValue(inst.RHS)
		if err != nil {
			return instPayload{}, err
		}
		result := varPayload{Type: encodeType(inst.Result.Ty), ID: inst.Result.ID}
		return instPayload{Op: opBin, Kind: uint8(inst.Kind), LHS: &lhs, RHS: &rhs, Result: &result}, nil
	case ir.Call:
		args := make([]valuePayload, len(inst.Args))
		for i, arg := range inst.Args {
			v, err := encodeValue(arg)
			if err != nil {
				return instPayload{}, err
			}
			args[i] = v
		}
		p := instPayload{Op: opCall, Name: inst.Name, Args: args}
		if inst.Result != nil {
			p.Result = &varPayload{Type: encodeType(inst.Result.Ty), ID: inst.Result.ID}
		}
		return p, nil
	case ir.If:
		then, err := encodeInsts(inst.Then)
		if err != nil {
			return instPayload{}, err
		}
		els, err := encodeInsts(inst.Else)
		if err != nil {
			return instPayload{}, err
		}
		return instPayload{Op: opIf, Cond: inst.Condition, Then: then, Else: els}, nil
	}
	return instPayload{}, errors.Backend("cannot encode instruction %T", inst)
}

func decodeInsts(payloads []instPayload) ([]ir.Instruction, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	insts := make([]ir.Instruction, 0, len(payloads))
	for _, p := range payloads {
		inst, err := decodeInst(p)
		if err != nil {
			return nil, err
		}
		insts = append(insts, inst)
	}
	return insts, nil
}

func decodeInst(p instPayload) (ir.Instruction, error) {
	switch {
	case p.Op <= opReset:
		return ir.Single{Op: ir.SingleOp(p.Op), Qubit: p.Qubit}, nil
	case p.Op == opCX:
		return ir.Controlled{Op: ir.GateCX, Control: p.Control, Target: p.Target}, nil
	case p.Op == opCZ:
		return ir.Controlled{Op: ir.GateCZ, Control: p.Control, Target: p.Target}, nil
	case p.Op >= opRX && p.Op <= opRZ:
		if p.Theta == nil {
			return nil, errors.Backend("rotation without an angle operand")
		}
		theta, err := decodeValue(*p.Theta)
		if err != nil {
			return nil, err
		}
		return ir.Rotated{Op: ir.RotationOp(p.Op - opRX), Theta: theta, Qubit: p.Qubit}, nil
	case p.Op == opM:
		return ir.Measure{Qubit: p.Qubit, Target: p.Target}, nil
	case p.Op == opBin:
		return decodeBin(p)
	case p.Op == opCall:
		return decodeCall(p)
	case p.Op == opIf:
		then, err := decodeInsts(p.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeInsts(p.Else)
		if err != nil {
			return nil, err
		}
		return ir.If{Condition: p.Cond, Then: then, Else: els}, nil
	}
	return nil, errors.Backend("unknown opcode %d", p.Op)
}

func decodeBin(p instPayload) (ir.Instruction, error) {
	if ir.BinKind(p.Kind) > ir.ICmpSle {
		return nil, errors.Backend("unknown binary operation kind %d", p.Kind)
	}
	if p.LHS == nil || p.RHS == nil || p.Result == nil {
		return nil, errors.Backend("binary operation with missing operands")
	}
	lhs, err := decodeValue(*p.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := decodeValue(*p.RHS)
	if err != nil {
		return nil, err
	}
	result, err := decodeVariable(*p.Result)
	if err != nil {
		return nil, err
	}
	return ir.BinOp{Kind: ir.BinKind(p.Kind), LHS: lhs, RHS: rhs, Result: result}, nil
}

func decodeCall(p instPayload) (ir.Instruction, error) {
	args := make([]ir.Value, len(p.Args))
	for i, arg := range p.Args {
		v, err := decodeValue(arg)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	var result *ir.Variable
	if p.Result != nil {
		v, err := decodeVariable(*p.Result)
		if err != nil {
			return nil, err
		}
		result = &v
	}
	return ir.Call{Name: p.Name, Args: args, Result: result}, nil
}
