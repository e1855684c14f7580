package formmail

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// NewSubmission splits decoded fields into a Submission.
// It returns a *MissingFieldsError if any required field is absent.
func NewSubmission(fields Fields) (Submission, error) {
	if missing := fields.Missing(); len(missing) > 0 {
		return Submission{}, &MissingFieldsError{Names: missing}
	}

	var s Submission
	for _, field := range fields {
		switch field.Name {
		case FieldSenderName:
			s.SenderName = field.Value
		case FieldSenderEmail:
			s.SenderEmail = field.Value
		case FieldSubject:
			s.Subject = field.Value
		case FieldMessage:
			s.Message = field.Value
		default:
			s.Extra = append(s.Extra, field)
		}
	}
	return s, nil
}

// Validator checks submission values. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the submission rules registered.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("singleline", validateSingleLine)
	return &Validator{validate: v}
}

// Validate returns an *InvalidFieldsError naming every field that failed.
func (v *Validator) Validate(s Submission) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	failed := make(map[string]bool, len(fieldErrors))
	for _, fe := range fieldErrors {
		failed[fe.Field()] = true
	}
	var names []string
	for _, name := range RequiredFields {
		if failed[name] {
			names = append(names, name)
		}
	}
	return &InvalidFieldsError{Names: names}
}

// header values must not be able to start a new header line
func validateSingleLine(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), "\r\n")
}
