package initgen

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Generate matches exactly one of these
// with errors.Is, unless the context was cancelled.
var (
	ErrPathMissing      = errors.New("path does not exist")
	ErrUnsupportedEntry = errors.New("not a directory or Python source file")
	ErrParseFailed      = errors.New("parse failed")
	ErrReadFailed       = errors.New("read failed")
	ErrWriteFailed      = errors.New("write failed")
)

// Error is a failure at Path. Kind is one of the Err* values above and Err,
// when set, is the underlying cause.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
