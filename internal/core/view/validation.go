package view

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/user-console/internal/core/domain"
)

// emailPattern is deliberately loose: something@something.something.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

var fieldNames = map[string]string{
	"FirstName": domain.FieldFirstName,
	"LastName":  domain.FieldLastName,
	"Email":     domain.FieldEmail,
	"Password":  domain.FieldPassword,
}

var requiredMessages = map[string]string{
	domain.FieldFirstName: "First name is required",
	domain.FieldLastName:  "Last name is required",
	domain.FieldEmail:     "Email is required",
	domain.FieldPassword:  "Password is required",
}

// FormValidator checks drafts and credentials with go-playground/validator
// and turns its failures into per-field messages.
type FormValidator struct {
	v *validator.Validate
}

// NewFormValidator registers the console's custom tags.
func NewFormValidator() *FormValidator {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("looseemail", validateLooseEmail)
	return &FormValidator{v: v}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateLooseEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// Check validates a struct and returns one message per failing field. The
// map always has an entry, possibly empty, for every tagged field.
func (fv *FormValidator) Check(form any, fields ...string) domain.FieldErrors {
	errs := make(domain.FieldErrors, len(fields))
	for _, f := range fields {
		errs[f] = ""
	}

	err := fv.v.Struct(form)
	if err == nil {
		return errs
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, fe := range ve {
		name := fieldNames[fe.StructField()]
		if name == "" || errs[name] != "" {
			continue
		}
		errs[name] = fieldMessage(name, fe.Tag())
	}
	return errs
}

func fieldMessage(field, tag string) string {
	switch tag {
	case "required", "notblank":
		return requiredMessages[field]
	case "looseemail":
		return "Email is invalid"
	default:
		return field + " is invalid"
	}
}
