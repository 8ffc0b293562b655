package errors

import (
	stderrors "errors"
	"fmt"
)

// ValidationReason identifies which input rule a group violated
type ValidationReason string

const (
	ReasonNegativeSize        ValidationReason = "negative_size"
	ReasonNegativeConversions ValidationReason = "negative_conversions"
	ReasonZeroSize            ValidationReason = "zero_size"
	ReasonConversionsExceed   ValidationReason = "conversions_exceed_size"
)

// ValidationError reports malformed experiment counts for one group
type ValidationError struct {
	Group  string
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonNegativeSize:
		return fmt.Sprintf("Group %s sample size is negative", e.Group)
	case ReasonNegativeConversions:
		return fmt.Sprintf("Group %s conversions are negative", e.Group)
	case ReasonZeroSize:
		return fmt.Sprintf("Group %s sample size cannot be 0", e.Group)
	case ReasonConversionsExceed:
		return fmt.Sprintf("Group %s conversions are greater than sample size", e.Group)
	}
	return fmt.Sprintf("Group %s input is invalid (%s)", e.Group, e.Reason)
}

// Code returns CodeInvalidInput
func (e *ValidationError) Code() string { return CodeInvalidInput }

// NewValidationError creates a ValidationError
func NewValidationError(group string, reason ValidationReason) *ValidationError {
	return &ValidationError{Group: group, Reason: reason}
}

// ArgumentError reports an unrecognized configuration value
type ArgumentError struct {
	Name       string
	Value      string
	Allowed    []string
	Constraint string
}

func (e *ArgumentError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s must be %s, got %s", e.Name, e.Constraint, e.Value)
	}
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid %s %q", e.Name, e.Value)
	}
	return fmt.Sprintf("%s must be %s, got %q", e.Name, quoteList(e.Allowed), e.Value)
}

// Code returns CodeInvalidArgument
func (e *ArgumentError) Code() string { return CodeInvalidArgument }

// NewArgumentError creates an ArgumentError
func NewArgumentError(name, value string, allowed ...string) *ArgumentError {
	return &ArgumentError{Name: name, Value: value, Allowed: allowed}
}

// AsValidationError extracts a ValidationError from the chain
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if stderrors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// IsInvalidInput reports whether err carries a ValidationError
func IsInvalidInput(err error) bool {
	_, ok := AsValidationError(err)
	return ok
}

// IsInvalidArgument reports whether err carries an ArgumentError
func IsInvalidArgument(err error) bool {
	var aErr *ArgumentError
	return stderrors.As(err, &aErr)
}

// IsUserError reports whether err was caused by the caller's input
func IsUserError(err error) bool {
	return IsInvalidInput(err) || IsInvalidArgument(err)
}

func quoteList(values []string) string {
	switch len(values) {
	case 1:
		return fmt.Sprintf("'%s'", values[0])
	case 2:
		return fmt.Sprintf("'%s' or '%s'", values[0], values[1])
	}
	out := ""
	for i, v := range values {
		switch {
		case i == len(values)-1:
			out += fmt.Sprintf("or '%s'", v)
		default:
			out += fmt.Sprintf("'%s', ", v)
		}
	}
	return out
}
