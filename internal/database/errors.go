package database

import (
	"errors"
	"fmt"
)

// Error kinds. Services wrap these with case-specific messages via the *f
// helpers below; the HTTP layer maps them to status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrAlreadyUsed  = errors.New("already used")
	ErrUnknownState = errors.New("unknown state")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func NotFoundf(format string, args ...any) error {
	return &kindError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) error {
	return &kindError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func AlreadyUsedf(format string, args ...any) error {
	return &kindError{kind: ErrAlreadyUsed, msg: fmt.Sprintf(format, args...)}
}

func UnknownStatef(format string, args ...any) error {
	return &kindError{kind: ErrUnknownState, msg: fmt.Sprintf(format, args...)}
}
