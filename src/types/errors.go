package types

import "errors"

type ErrorKind string

const (
	ErrValidation    ErrorKind = "validation"
	ErrConflict      ErrorKind = "conflict"
	ErrAuthorization ErrorKind = "authorization"
)

// FlowError carries a workflow failure out of the booking and admission
// engines so the HTTP layer can map it to a status code.
type FlowError struct {
	Kind   ErrorKind
	Reason string
}

func (e *FlowError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) *FlowError {
	return &FlowError{Kind: ErrValidation, Reason: reason}
}

func NewConflictError(reason string) *FlowError {
	return &FlowError{Kind: ErrConflict, Reason: reason}
}

func NewAuthorizationError(reason string) *FlowError {
	return &FlowError{Kind: ErrAuthorization, Reason: reason}
}

func IsKind(err error, kind ErrorKind) bool {
	var fe *FlowError
	return errors.As(err, &fe) && fe.Kind == kind
}
