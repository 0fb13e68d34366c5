package domain

import "errors"

var (
	ErrAuthenticationRequired = errors.New("Not authenticated")
	ErrInvalidExternalSession = errors.New("Invalid session")
	ErrMissingSessionID       = errors.New("Missing session ID")
	ErrNotFound               = errors.New("not found")
	ErrGenerationFailed       = errors.New("generation failed")
	ErrInvalidInput           = errors.New("invalid input")
)

// GenerationError is returned when the text-generation service fails.
// Its message is the underlying error text, unchanged.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return ErrGenerationFailed.Error()
	}
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrGenerationFailed, e.Err}
}

// InvalidInputError describes a rejected request field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}
