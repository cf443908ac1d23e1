package binding

import "errors"

// MsgStringExpected is the TypeError message for a missing or non-string
// text argument.
const MsgStringExpected = "String expected"

// ErrInvalidArgument is matched by every *TypeError.
var ErrInvalidArgument = errors.New("invalid argument")

// TypeError reports an argument of the wrong type. The call was not attempted.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string {
	return "TypeError: " + e.Message
}

// Unwrap returns ErrInvalidArgument.
func (e *TypeError) Unwrap() error {
	return ErrInvalidArgument
}

// HostError carries a failure raised while the engine ran, or while building
// a parser, as a plain message for the host.
type HostError struct {
	Message string
	Err     error
}

func (e *HostError) Error() string {
	return "Error: " + e.Message
}

// Unwrap returns the underlying error, if any.
func (e *HostError) Unwrap() error {
	return e.Err
}
