package errors

import (
	stderrors "errors"
	"fmt"
)

// BuildError is a coded construction or backend error. Construction
// errors fail exactly one operation and leave already-appended
// instructions untouched.
type BuildError struct {
	Code    string
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...any) *BuildError {
	return &BuildError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// TypeMismatch reports an operand that cannot be interpreted as the
// required value type.
func TypeMismatch(format string, args ...any) *BuildError {
	return newError(ErrorTypeMismatch, format, args...)
}

// Overflow reports an integer literal that needs more than width bits.
func Overflow(width uint32, value uint64) *BuildError {
	return newError(ErrorOverflow, "value %d too big for %d-bit integer", value, width)
}

// ArityMismatch reports a call whose argument count disagrees with the
// callee's declared parameter count.
func ArityMismatch(name string, want, got int) *BuildError {
	return newError(ErrorArityMismatch, "%s expects %d arguments, got %d", name, want, got)
}

// UnknownCallee reports a call to a name never declared as an external
// function.
func UnknownCallee(name string) *BuildError {
	return newError(ErrorUnknownCallee, "function %q is not declared", name)
}

// DuplicateFunction reports a second declaration of an external function
// name.
func DuplicateFunction(name string) *BuildError {
	return newError(ErrorDuplicateFunction, "function %q is already declared", name)
}

// UnbalancedFrames reports a finalization attempt with a frame stack
// depth other than one. This is a defect in the caller's use of the
// scoped-construction protocol, not a recoverable runtime state.
func UnbalancedFrames(depth int) *BuildError {
	return newError(ErrorUnbalancedFrames, "builder holds %d frames, expected exactly 1", depth)
}

// Backend wraps a diagnostic reported by the emission or parsing
// backend. The diagnostic is surfaced verbatim.
func Backend(format string, args ...any) *BuildError {
	return newError(ErrorBackend, format, args...)
}

// IsCode reports whether err is a BuildError carrying the given code.
func IsCode(err error, code string) bool {
	var be *BuildError
	return stderrors.As(err, &be) && be.Code == code
}
