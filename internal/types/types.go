package types

import "fmt"

// Kind enumerates the value kinds of the base profile. The set is closed:
// sized integers, doubles, qubit references and result references.
type Kind uint8

const (
	KindInteger Kind = iota
	KindDouble
	KindQubit
	KindResult
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDouble:
		return "double"
	case KindQubit:
		return "qubit"
	case KindResult:
		return "result"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for a profile value type. Width is the
// exact number of representable bits and is meaningful only for integers:
// two integer types are equal only if their widths match.
type Type struct {
	Kind  Kind
	Width uint32
}

// Integer returns the sized integer type of the given bit width (w >= 1).
func Integer(width uint32) Type {
	return Type{Kind: KindInteger, Width: width}
}

// Bool is the 1-bit integer type carried by comparison results. The
// profile has no separate boolean type.
func Bool() Type {
	return Integer(1)
}

var (
	Double = Type{Kind: KindDouble}
	Qubit  = Type{Kind: KindQubit}
	Result = Type{Kind: KindResult}
)

func (t Type) String() string {
	if t.Kind == KindInteger {
		return fmt.Sprintf("i%d", t.Width)
	}
	return t.Kind.String()
}

// Return is a function return type: void, or exactly one value type.
// The zero value is void; the profile has no multi-value returns.
type Return struct {
	Type     Type
	HasValue bool
}

// Void returns the void return type.
func Void() Return { return Return{} }

// ReturnValue returns a single-value return type.
func ReturnValue(t Type) Return { return Return{Type: t, HasValue: true} }

func (r Return) String() string {
	if !r.HasValue {
		return "void"
	}
	return r.Type.String()
}

// Function describes an external function signature.
type Function struct {
	Params []Type
	Return Return
}

// Arity is the declared parameter count.
func (f Function) Arity() int { return len(f.Params) }
