package flow

import (
	"errors"
	"fmt"
)

// DecodeError indicates that a caller-supplied textual input (a hex address,
// identifier or key) could not be decoded into its binary form.
type DecodeError struct {
	Field string
	Err   error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("could not decode %s: %s", e.Field, e.Err)
}

func (e DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError returns whether err is or wraps a DecodeError.
func IsDecodeError(err error) bool {
	var target DecodeError
	return errors.As(err, &target)
}

// OversizedFieldError indicates that a fixed-width binary field received a
// value longer than the width mandated by the protocol. This is a caller
// precondition violation; the field is never truncated.
type OversizedFieldError struct {
	Field  string
	Width  int
	Length int
}

func (e OversizedFieldError) Error() string {
	return fmt.Sprintf("%s of %d bytes exceeds fixed width of %d bytes", e.Field, e.Length, e.Width)
}

// IsOversizedFieldError returns whether err is or wraps an OversizedFieldError.
func IsOversizedFieldError(err error) bool {
	var target OversizedFieldError
	return errors.As(err, &target)
}
