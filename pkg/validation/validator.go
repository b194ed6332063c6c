// Package validation provides request validation built on
// go-playground/validator with clustering-specific rules
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator interface for custom validation
// PRINCIPLES:
// - ISP: Simple interface with single method
// - DIP: Depend on interface, not concrete types
type Validator interface {
	Validate() error
}

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Message string      `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate is the main validator instance
var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// Register custom validation functions
	Validate.RegisterValidation("index_kind", validateIndexKind)
	Validate.RegisterValidation("compression", validateCompression)
	Validate.RegisterValidation("dataset_layout", validateDatasetLayout)

	// Register tag name function to use JSON tags for field names
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// ValidateStruct validates a struct's `validate` tags and, when the type
// implements Validator, its own Validate method as well.
func ValidateStruct(s interface{}) error {
	if err := Validate.Struct(s); err != nil {
		return formatValidationErrors(err)
	}
	if v, ok := s.(Validator); ok {
		return v.Validate()
	}
	return nil
}

// formatValidationErrors converts validator errors to our custom format
func formatValidationErrors(err error) error {
	var errors ValidationErrors

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Value:   fieldError.Value(),
				Message: getErrorMessage(fieldError),
			})
		}
		return errors
	}
	return err
}

// getErrorMessage returns a human-readable error message
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "gt":
		return fmt.Sprintf("value must be greater than %s", fe.Param())
	case "min":
		return fmt.Sprintf("minimum value/length is %s", fe.Param())
	case "max":
		return fmt.Sprintf("maximum value/length is %s", fe.Param())
	case "index_kind":
		return "must be a valid index kind (brute, grid)"
	case "compression":
		return "must be a valid compression (none, gzip, zstd)"
	case "dataset_layout":
		return "must be a valid dataset layout (xy, iris)"
	default:
		return fmt.Sprintf("validation failed: %s", fe.Tag())
	}
}

// Custom validation functions for clustering-specific rules

// validateIndexKind validates neighborhood index kinds
func validateIndexKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "brute", "grid":
		return true
	}
	return false
}

// validateCompression validates serializer compression names
func validateCompression(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "none", "gzip", "zstd":
		return true
	}
	return false
}

// validateDatasetLayout validates CSV dataset layout names
func validateDatasetLayout(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "xy", "iris":
		return true
	}
	return false
}
