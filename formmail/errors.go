package formmail

import (
	"errors"
	"strings"
)

// Request shape errors.
var (
	ErrMissingBody  = errors.New(MsgMissingBody)
	ErrInvalidBody  = errors.New(MsgInvalidBody)
	ErrBodyTooLarge = errors.New(MsgBodyTooLarge)
)

// MissingFieldsError is returned when required fields are absent from a submission.
type MissingFieldsError struct {
	Names []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing " + pluralize(len(e.Names)) + ": " + strings.Join(e.Names, ", ") + "."
}

// InvalidFieldsError is returned when present fields fail validation.
type InvalidFieldsError struct {
	Names []string
}

func (e *InvalidFieldsError) Error() string {
	return "Invalid " + pluralize(len(e.Names)) + ": " + strings.Join(e.Names, ", ") + "."
}

func pluralize(n int) string {
	if n > 1 {
		return "properties"
	}
	return "property"
}
