package face

import (
	"errors"
	"fmt"
)

var (
	// ErrTooShort is returned for files smaller than the fixed header.
	ErrTooShort = errors.New("face: file shorter than header")

	// ErrUnknownTag halts the walk; the size of an unrecognized
	// record cannot be inferred, so skipping it is unsafe.
	ErrUnknownTag = errors.New("face: unknown element tag")

	// ErrBounds is returned when a record or section offset points
	// outside the file.
	ErrBounds = errors.New("face: record extends beyond end of file")
)

// Error wraps a decode failure with the byte offset at which it was
// detected.
type Error struct {
	Offset int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v at offset %#x", e.Err, e.Offset)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errAt(off int, err error) error {
	return &Error{Offset: off, Err: err}
}
