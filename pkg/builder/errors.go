package builder

import (
	"errors"
	"fmt"
)

// User input failures. They are wrapped in *InputError so callers can show
// the message and still match the cause with errors.Is.
var (
	ErrNoActiveForm       = errors.New("builder: no active form")
	ErrMissingFields      = errors.New("builder: missing required fields")
	ErrDuplicateButton    = errors.New("builder: form already has a button")
	ErrInvalidButtons     = errors.New("builder: invalid button configuration")
	ErrInvalidButtonCount = errors.New("builder: invalid button count")
	ErrEmptyOptions       = errors.New("builder: dropdown has no options")
	ErrUnknownType        = errors.New("builder: unknown block type")
)

// Programming invariant violations. They are wrapped in *InternalError,
// logged, and never shown to the user.
var (
	ErrIndexOutOfRange    = errors.New("builder: index out of range")
	ErrMissingBlockList   = errors.New("builder: form has no block list")
	ErrUnrecognizedType   = errors.New("builder: block has no recognizable type")
	ErrActivationDisabled = errors.New("builder: form activation flags are disabled")
	ErrNoDrag             = errors.New("builder: no drag in progress")
	ErrDragInProgress     = errors.New("builder: form set is locked by a drag")
	ErrUnknownCommand     = errors.New("builder: unknown command")
)

// User-facing messages.
const (
	MessageNoActiveForm       = "Please add a form first then you can add blocks."
	MessageMissingFields      = "Please fill in all the fields."
	MessageDuplicateButton    = "Only one button is allowed per form!"
	MessageInvalidButtons     = "Please fill in all the fields for checkbox or radio buttons."
	MessageInvalidButtonCount = "Please enter a valid positive integer for the number of buttons."
	MessageEmptyOptions       = "Please add at least one option for the dropdown."
	MessageUnknownType        = "Please choose a valid input type."
	MessageButtonOutOfRange   = "That button does not exist."
)

// InputError reports a blocking problem with what the user entered. The
// operation that produced it made no changes.
type InputError struct {
	Op      string
	Message string
	Err     error
}

func newInputError(op string, cause error, message string) *InputError {
	return &InputError{Op: op, Message: message, Err: cause}
}

func (e *InputError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *InputError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InternalError reports a violated structural invariant. State is left
// unchanged and the error is only logged.
type InternalError struct {
	Op  string
	Err error
}

func newInternalError(op string, format string, args ...any) *InternalError {
	return &InternalError{Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *InternalError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsInputError reports whether err carries a user-facing message.
func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsInternalError reports whether err is a defensive failure.
func IsInternalError(err error) bool {
	var target *InternalError
	return errors.As(err, &target)
}

// UserMessage extracts the user-facing message from err, if any.
func UserMessage(err error) (string, bool) {
	var target *InputError
	if errors.As(err, &target) {
		return target.Message, true
	}
	return "", false
}
