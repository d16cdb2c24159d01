package diag

import (
	"errors"
	"fmt"
)

// Error is a fatal configuration error. It aborts the generation run.
type Error struct {
	Diag Diagnostic
}

// Errorf builds a configuration *Error for subject.
func Errorf(code Code, subject, format string, args ...any) *Error {
	return &Error{Diag: NewError(code, subject, fmt.Sprintf(format, args...))}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Diag.Short()
}

// Code returns the diagnostic code.
func (e *Error) Code() Code {
	if e == nil {
		return UnknownCode
	}
	return e.Diag.Code
}

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether err carries a configuration error with code.
func HasCode(err error, code Code) bool {
	de, ok := AsError(err)
	return ok && de.Diag.Code == code
}

// Recover converts a panic carrying an *Error (raised by Must* helpers),
// possibly wrapped, into a returned error. Other panics are re-raised.
//
//	defer diag.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok {
		if _, ok := AsError(err); ok {
			*errp = err
			return
		}
	}
	panic(r)
}
