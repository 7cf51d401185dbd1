package errors

// Error codes for the qirgen builder and backend.
// These codes are used in error messages to provide consistent error
// identification across the toolchain.
//
// Error code ranges:
// Q0001-Q0099: construction errors, detected eagerly at the offending
//              operation call
// Q0100-Q0199: backend diagnostics (emission and parsing)
const (
	// Q0001: operand cannot be interpreted as the required value type
	ErrorTypeMismatch = "Q0001"

	// Q0002: integer literal does not fit its target bit width
	ErrorOverflow = "Q0002"

	// Q0003: call argument count disagrees with the declared parameter count
	ErrorArityMismatch = "Q0003"

	// Q0004: call references a name never declared as an external function
	ErrorUnknownCallee = "Q0004"

	// Q0005: external function name declared twice
	ErrorDuplicateFunction = "Q0005"

	// Q0006: frame stack unbalanced at finalization time
	ErrorUnbalancedFrames = "Q0006"

	// Q0100: emission or parsing failure reported by the backend
	ErrorBackend = "Q0100"
)
