package parsec

import "fmt"

// ErrorKind discriminates the cases of ParseError.
type ErrorKind int

const (
	// Mismatch indicates a predicate failed on present input.
	Mismatch ErrorKind = iota
	// Conversion indicates a user convert function rejected a value.
	Conversion
	// Incomplete indicates input ended mid-match.
	Incomplete
	// Expect wraps a child error with a higher-level expectation label.
	Expect
	// Custom is a user-injected error.
	Custom
)

func (k ErrorKind) String() string {
	switch k {
	case Mismatch:
		return "Mismatch"
	case Conversion:
		return "Conversion"
	case Incomplete:
		return "Incomplete"
	case Expect:
		return "Expect"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// ParseError is the diagnostic payload of a failed ParseResult.
type ParseError struct {
	Kind    ErrorKind
	Offset  int
	Length  int
	Message string
	Inner   *ParseError
}

// NewMismatch builds a Mismatch error: a predicate failed on present input.
func NewMismatch(offset, length int, message string) *ParseError {
	return &ParseError{Kind: Mismatch, Offset: offset, Length: length, Message: message}
}

// NewConversion builds a Conversion error: a convert function rejected a value.
func NewConversion(offset, length int, message string) *ParseError {
	return &ParseError{Kind: Conversion, Offset: offset, Length: length, Message: message}
}

// NewIncomplete builds an Incomplete error: input ended mid-match.
func NewIncomplete(offset int) *ParseError {
	return &ParseError{Kind: Incomplete, Offset: offset, Message: "unexpected end of input"}
}

// NewExpect wraps inner with a higher-level expectation label.
func NewExpect(offset int, inner *ParseError, message string) *ParseError {
	return &ParseError{Kind: Expect, Offset: offset, Inner: inner, Message: message}
}

// NewCustom builds a user-injected error, optionally wrapping inner.
func NewCustom(offset int, inner *ParseError, message string) *ParseError {
	return &ParseError{Kind: Custom, Offset: offset, Inner: inner, Message: message}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case Incomplete:
		return "Incomplete"
	case Mismatch:
		return fmt.Sprintf("Mismatch at %d: %s", e.Offset, e.Message)
	case Conversion:
		return fmt.Sprintf("Conversion failed at %d: %s", e.Offset, e.Message)
	case Expect:
		return fmt.Sprintf("%s at %d: %s", e.Message, e.Offset, e.Inner)
	case Custom:
		if e.Inner != nil {
			return fmt.Sprintf("%s at %d (inner: %s)", e.Message, e.Offset, e.Inner)
		}
		return fmt.Sprintf("%s at %d", e.Message, e.Offset)
	default:
		return e.Message
	}
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *ParseError) Unwrap() error {
	if e == nil || e.Inner == nil {
		return nil
	}
	return e.Inner
}

// Equal reports whether two ParseErrors describe the same failure.
// Used by property-law tests; two errors are equal when every field
// matches, recursing through Inner.
func (e *ParseError) Equal(other *ParseError) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Kind != other.Kind || e.Offset != other.Offset || e.Length != other.Length || e.Message != other.Message {
		return false
	}
	return e.Inner.Equal(other.Inner)
}

// DeepestOffset walks Inner to find the offset of the innermost wrapped
// error.
func (e *ParseError) DeepestOffset() int {
	if e == nil {
		return -1
	}
	if e.Inner != nil {
		return e.Inner.DeepestOffset()
	}
	return e.Offset
}
