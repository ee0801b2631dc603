package protocol

import "fmt"

// ConditionTypeError reports a numeric comparison attempted against a
// non-numeric booking field.
type ConditionTypeError struct {
	Field string
	Value any
	Err   error
}

func (e *ConditionTypeError) Error() string {
	return fmt.Sprintf("condition type error: field %q value %v is not numeric", e.Field, e.Value)
}

func (e *ConditionTypeError) Unwrap() error { return e.Err }

// DeliveryError wraps a notification delivery failure from the external
// transport.
type DeliveryError struct {
	Recipients []string
	Err        error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("notification delivery failed for %v: %v", e.Recipients, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// ActionError wraps an external action failure.
type ActionError struct {
	ActionType string
	Err        error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %q failed: %v", e.ActionType, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }
