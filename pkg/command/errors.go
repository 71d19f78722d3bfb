package command

import (
	"errors"
	"fmt"

	"tableflip.dev/atas/pkg/model"
)

var (
	// ErrParse is the kind of every error for malformed or unknown input.
	ErrParse = errors.New("parse error")
	// ErrValidation is the kind of every error for well-formed commands that
	// reference something invalid.
	ErrValidation = errors.New("validation error")
)

// Error is a user-facing failure. Message is shown verbatim; Kind supports
// errors.Is against ErrParse and ErrValidation.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// ParseErrorf returns an ErrParse error.
func ParseErrorf(format string, args ...interface{}) error {
	return &Error{Kind: ErrParse, Message: fmt.Sprintf(format, args...)}
}

// InvalidFormat is the parse error naming the expected usage.
func InvalidFormat(usage string) error {
	return ParseErrorf(MessageInvalidCommandFormat, usage)
}

// ValidationErrorf returns an ErrValidation error.
func ValidationErrorf(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// fromModel translates model failures into user-facing errors. Consistency
// failures are passed through untouched so callers can treat them as fatal.
func fromModel(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrConsistency):
		return err
	case errors.Is(err, model.ErrDuplicateStudent):
		return ValidationErrorf(MessageDuplicateStudent)
	case errors.Is(err, model.ErrStudentNotFound):
		return ValidationErrorf(MessageInvalidStudentIndex)
	case errors.Is(err, model.ErrDuplicateSession):
		return ValidationErrorf(MessageDuplicateSession)
	case errors.Is(err, model.ErrSessionNotFound):
		return ValidationErrorf(MessageInvalidSessionIndex)
	case errors.Is(err, model.ErrNoSessionEntered):
		return ValidationErrorf(MessageNoSessionEntered)
	case errors.Is(err, model.ErrNothingToUndo):
		return ValidationErrorf(MessageNothingToUndo)
	case errors.Is(err, model.ErrNothingToRedo):
		return ValidationErrorf(MessageNothingToRedo)
	default:
		return ValidationErrorf("%v", err)
	}
}
