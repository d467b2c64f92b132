package cli

import "errors"

// ErrInvalidArguments is returned for a command line that selects no
// action, several actions, or options and arguments the action does not take
var ErrInvalidArguments = errors.New("invalid arguments")

// ArgumentsError is an ErrInvalidArguments with the reason attached
type ArgumentsError struct {
	Reason string
}

func (e *ArgumentsError) Error() string {
	return ErrInvalidArguments.Error() + ": " + e.Reason
}

func (e *ArgumentsError) Unwrap() error {
	return ErrInvalidArguments
}
