// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/nmsconsole/internal/logging"
	"github.com/tomtom215/nmsconsole/internal/settings"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError describes one setting that failed validation.
type ValidationError struct {
	field   string
	tag     string
	value   string
	message string
}

// Field returns the setting key that failed validation.
func (e *ValidationError) Field() string {
	return e.field
}

// Tag returns the validator name that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Value returns the submitted value. Secret values are masked.
func (e *ValidationError) Value() string {
	return e.value
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	return e.message
}

// RequestValidationError collects every failed setting of one submission.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the slice of validation errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error implements the error interface, returning a combined error message.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(ve.errors))
	for _, err := range ve.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors the API error envelope without importing the api package.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts the errors into the API error format.
func (ve *RequestValidationError) ToAPIError() *APIError {
	if len(ve.errors) == 0 {
		return &APIError{Code: "VALIDATION_ERROR", Message: "Validation failed"}
	}

	if len(ve.errors) == 1 {
		err := ve.errors[0]
		return &APIError{
			Code:    "VALIDATION_ERROR",
			Message: err.message,
			Details: map[string]interface{}{
				"field": err.field,
				"tag":   err.tag,
				"value": err.value,
			},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	messages := make([]string, 0, len(ve.errors))
	for i, err := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   err.field,
			"tag":     err.tag,
			"message": err.message,
		}
		messages = append(messages, err.message)
	}

	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: strings.Join(messages, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the singleton validator instance with the console's
// custom tags registered. This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// The built-in port tag reads the field with Uint and panics on the
		// string values settings carry.
		mustRegister("tcp_port", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Field().String())
			return err == nil && n >= 1 && n <= 65535
		})
		mustRegister("log_level", func(fl validator.FieldLevel) bool {
			return logging.ValidLevel(fl.Field().String())
		})
		mustRegister("positive_int", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Field().String())
			return err == nil && n > 0
		})
		mustRegister("strong_secret", func(fl validator.FieldLevel) bool {
			return len(DefaultSecretPolicy().Check(fl.Field().String())) == 0
		})
		mustRegister("map_zoom", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Field().String())
			return err == nil && n >= 0 && n <= 22
		})
	})

	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validator %s: %v", tag, err))
	}
}

// namedValidators maps the validator names used in setting definitions to
// validator tags. Every validator except required accepts an empty value.
var namedValidators = map[string]string{
	"required":     "required",
	"port":         "omitempty,tcp_port",
	"hostname":     "omitempty,hostname_rfc1123|ip",
	"url":          "omitempty,url",
	"log_level":    "omitempty,log_level",
	"log_format":   "omitempty,oneof=json console",
	"positive_int": "omitempty,positive_int",
	"zoom":         "omitempty,map_zoom",
	"secret":       "omitempty,strong_secret",
}

// errorMessageTemplates maps validator names to message templates.
var errorMessageTemplates = map[string]string{
	"required":     "%s is required",
	"port":         "%s must be a port number between 1 and 65535",
	"hostname":     "%s must be a valid hostname or IP address",
	"url":          "%s must be a valid URL",
	"log_level":    "%s must be one of: trace, debug, info, warn, error, fatal, panic, disabled",
	"log_format":   "%s must be one of: json, console",
	"positive_int": "%s must be a positive integer",
	"zoom":         "%s must be a zoom level between 0 and 22",
	"secret":       "%s must be at least 16 characters, mix character classes and avoid common words",
	"int":          "%s must be an integer",
	"bool":         "%s must be true or false",
}

// KnownValidator reports whether name can be used in a setting definition.
func KnownValidator(name string) bool {
	_, ok := namedValidators[name]
	return ok
}

// ValidateSettings checks every non-null submitted value against its
// definition's data type and named validators. Unregistered keys are not
// checked; the store drops them. Returns nil when everything passes.
func ValidateSettings(registry *settings.Registry, values settings.EnvMap) *RequestValidationError {
	var errs []ValidationError

	for _, key := range values.Keys() {
		value, ok := values.Get(key)
		if !ok {
			continue
		}
		def, registered := registry.Lookup(key)
		if !registered {
			continue
		}
		if err := ValidateSetting(def, value); err != nil {
			errs = append(errs, *err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &RequestValidationError{errors: errs}
}

// ValidateSetting checks one value. The first failing check is reported.
func ValidateSetting(def settings.SettingDefinition, value string) *ValidationError {
	shown := value
	if def.Secret() {
		shown = logging.MaskSecret(value)
	}
	fail := func(tag string) *ValidationError {
		return &ValidationError{
			field:   def.Key,
			tag:     tag,
			value:   shown,
			message: fmt.Sprintf(errorMessageTemplates[tag], def.Key),
		}
	}

	if value != "" {
		switch def.DataType {
		case settings.TypeInt:
			if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
				return fail("int")
			}
		case settings.TypeBool:
			if _, err := strconv.ParseBool(strings.TrimSpace(value)); err != nil {
				return fail("bool")
			}
		}
	}

	v := GetValidator()
	for _, name := range def.Validations {
		tag, ok := namedValidators[name]
		if !ok {
			return &ValidationError{
				field:   def.Key,
				tag:     name,
				value:   shown,
				message: fmt.Sprintf("%s uses unknown validator %q", def.Key, name),
			}
		}

		err := v.Var(value, tag)
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return &ValidationError{field: def.Key, tag: name, value: shown, message: err.Error()}
		}
		return fail(name)
	}
	return nil
}
