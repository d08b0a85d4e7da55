package crypto

import (
	"errors"
	"fmt"
)

// invalidInputsError covers malformed key material and any other input the
// signature scheme cannot operate on.
type invalidInputsError struct {
	msg string
}

func (e invalidInputsError) Error() string {
	return e.msg
}

func newInvalidInputsError(format string, args ...interface{}) error {
	return invalidInputsError{msg: fmt.Sprintf(format, args...)}
}

// IsInvalidInputsError returns whether err is or wraps an invalid-inputs
// error produced by this package.
func IsInvalidInputsError(err error) bool {
	var target invalidInputsError
	return errors.As(err, &target)
}
