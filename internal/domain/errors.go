package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	ErrNotFinalStep   = errors.New("submission is only possible from the final step")
	ErrOrderPlaced    = errors.New("order already placed")
	ErrEmptyCart      = errors.New("your cart is empty")
	ErrUnknownField   = errors.New("unknown field")
)

// ValidationError reports required fields missing at a wizard step.
type ValidationError struct {
	Step    int
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("step %d: invalid fields: %s", e.Step, strings.Join(e.Fields, ", "))
}

// TransportError wraps a failed or unsuccessful send. State is preserved so the user can resubmit.
type TransportError struct {
	Category Category
	Message  string
	Err      error
}

func (e *TransportError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "send failed"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, msg)
}

func (e *TransportError) Unwrap() error { return e.Err }
