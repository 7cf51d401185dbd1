// Package builder assembles base-profile quantum programs instruction by
// instruction. A Builder owns a stack of instruction frames: operations
// append to the innermost frame, and conditional construction pushes one
// frame per branch body. Exactly one frame must remain when a module is
// finished.
//
// The package exposes two views over one shared Builder: Module, the
// program-level view owning the register declarations, and QisBuilder,
// the gate-level view. Neither view is safe for concurrent use; a build
// has a single owner.
package builder

import (
	"qirgen/internal/errors"
	"qirgen/internal/ir"
	"qirgen/internal/types"
)

// Builder is the mutable construction state shared by the Module and
// QisBuilder views: the frame stack, the external-function table and the
// last-allocated variable.
type Builder struct {
	frames    [][]ir.Instruction
	externals []ir.ExternalFunction
	index     map[string]int // callee name -> position in externals
	last      *ir.Variable
}

// New returns a builder holding a single empty top-level frame.
func New() *Builder {
	return &Builder{
		frames: make([][]ir.Instruction, 1),
		index:  make(map[string]int),
	}
}

// pushInstruction appends to the top-of-stack frame only; outer frames
// are never inspected or mutated.
func (b *Builder) pushInstruction(inst ir.Instruction) {
	top := len(b.frames) - 1
	b.frames[top] = append(b.frames[top], inst)
}

// PushFrame opens a new empty frame. Used when entering a conditional
// branch body; every push must be balanced by a PopFrame before the
// build is finished.
func (b *Builder) PushFrame() {
	b.frames = append(b.frames, nil)
}

// PopFrame removes the top frame and returns its instruction list.
func (b *Builder) PopFrame() []ir.Instruction {
	top := len(b.frames) - 1
	insts := b.frames[top]
	b.frames = b.frames[:top]
	return insts
}

// inFrame runs body inside a fresh frame and returns the instructions it
// appended. The frame is popped even when body fails or panics, so one
// failing branch callback cannot skew the stack depth. A nil body yields
// an empty branch.
func (b *Builder) inFrame(body func() error) (insts []ir.Instruction, err error) {
	b.PushFrame()
	defer func() {
		insts = b.PopFrame()
	}()
	if body == nil {
		return nil, nil
	}
	err = body()
	return
}

// fresh allocates the next variable. Ids start at 0 and advance by one
// per allocation for the whole build, regardless of type or frame
// nesting, so every result is globally unique.
func (b *Builder) fresh(ty types.Type) ir.Variable {
	var v ir.Variable
	if b.last == nil {
		v = ir.Variable{Ty: ty}
	} else {
		v = b.last.Next(ty)
	}
	b.last = &v
	return v
}

// declareExternal registers an external function signature. Names must
// be unique for the whole build.
func (b *Builder) declareExternal(name string, ty types.Function) error {
	if _, ok := b.index[name]; ok {
		return errors.DuplicateFunction(name)
	}
	b.index[name] = len(b.externals)
	b.externals = append(b.externals, ir.ExternalFunction{Name: name, Type: ty})
	return nil
}

func (b *Builder) lookupExternal(name string) (types.Function, bool) {
	i, ok := b.index[name]
	if !ok {
		return types.Function{}, false
	}
	return b.externals[i].Type, true
}

// finish snapshots the single remaining frame and the external-function
// table. It fails when the frame stack is unbalanced. The returned
// slices are copies: later builder mutation never reaches a snapshot.
func (b *Builder) finish() ([]ir.Instruction, []ir.ExternalFunction, error) {
	if len(b.frames) != 1 {
		return nil, nil, errors.UnbalancedFrames(len(b.frames))
	}
	insts := make([]ir.Instruction, len(b.frames[0]))
	copy(insts, b.frames[0])
	externals := make([]ir.ExternalFunction, len(b.externals))
	copy(externals, b.externals)
	return insts, externals, nil
}
