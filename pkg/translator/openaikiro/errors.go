package openaikiro

import (
	"errors"
	"fmt"
)

// ErrNoCurrentTurn is returned when the conversation does not end with a
// user message, so there is nothing to send as the current turn.
var ErrNoCurrentTurn = errors.New("conversation has no trailing user message")

// MalformedToolArgumentsError reports a tool call whose arguments are not a
// JSON object.
type MalformedToolArgumentsError struct {
	CallID string
	Name   string
	Err    error
}

func (e *MalformedToolArgumentsError) Error() string {
	return fmt.Sprintf("tool call %q (%s): malformed arguments: %v", e.CallID, e.Name, e.Err)
}

func (e *MalformedToolArgumentsError) Unwrap() error {
	return e.Err
}
