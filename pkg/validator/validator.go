package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) String() string {
	return fmt.Sprintf("field '%s' failed on rule '%s'", e.Field, e.Tag)
}

var validate = validator.New()

func init() {
	// uuid.Nil passes "required" because it is a value type, so uuid
	// fields need their own rule.
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
}

// ValidateStruct runs the struct's validate tags and returns one entry
// per failed field, empty when the struct is valid.
func ValidateStruct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs []FieldError
	for _, ve := range err.(validator.ValidationErrors) {
		fieldErrs = append(fieldErrs, FieldError{
			Field: ve.StructNamespace(),
			Tag:   ve.Tag(),
			Param: ve.Param(),
		})
	}
	return fieldErrs
}

// Describe joins all field errors into a single human-readable message.
func Describe(errs []FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}
