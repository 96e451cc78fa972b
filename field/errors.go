package field

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind uint8

// Validation failure kinds.
const (
	// KindFormat means a token is not a valid identifier, integer or hex
	// literal.
	KindFormat Kind = iota
	// KindRange means a value exceeds its bit width or enumerated domain.
	KindRange
	// KindArity means fewer tokens remain than a record requires.
	KindArity
	// KindUnknownKeyword means a record starts with an unknown keyword.
	KindUnknownKeyword
	// KindState means a hart, retire slot or capability precondition was
	// violated.
	KindState
)

var kindNames = [...]string{
	KindFormat:         "FormatError",
	KindRange:          "RangeError",
	KindArity:          "ArityError",
	KindUnknownKeyword: "UnknownKeywordError",
	KindState:          "StateError",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error is a validation failure. Only Msg is shown to users; Kind lets
// callers and tests tell failures apart.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err, or any error it wraps, is an *Error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}
