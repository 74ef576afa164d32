package signature

import (
	"fmt"
)

// MalformedSignatureError reports a Signature attribute that does not follow
// the method signature grammar.
type MalformedSignatureError struct {
	Signature string
	Offset    int
	Reason    string
}

func newMalformedSignatureError(sig string, offset int, reason string, args ...any) *MalformedSignatureError {
	return &MalformedSignatureError{
		Signature: sig,
		Offset:    offset,
		Reason:    fmt.Sprintf(reason, args...),
	}
}

func (e *MalformedSignatureError) Error() string {
	return fmt.Sprintf("malformed signature %q at offset %d: %s", e.Signature, e.Offset, e.Reason)
}

// UnsupportedClassifierError is returned when a type expression carries a
// classifier or type argument outside the closed set this package knows.
type UnsupportedClassifierError struct {
	Value any
}

func (e *UnsupportedClassifierError) Error() string {
	return fmt.Sprintf("unsupported classifier %T: %v", e.Value, e.Value)
}

// MethodError ties a failure to the method it occurred in.
type MethodError struct {
	Class      string
	Method     string
	Descriptor string
	Err        error
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("%s.%s%s: %v", e.Class, e.Method, e.Descriptor, e.Err)
}

func (e *MethodError) Unwrap() error {
	return e.Err
}
