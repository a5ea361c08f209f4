package execute

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// NewValidator returns a validator that also knows the `shellword` rule, which
// accepts only words that need no quoting in a POSIX shell.
func NewValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("shellword", func(fl validator.FieldLevel) bool {
		return shellSafeWord.MatchString(fl.Field().String())
	})
	return validate
}

var schemaValidator = NewValidator()

// ParamsFrom validates a parameter schema struct and flattens it into Params
// keyed by the `mapstructure` tags of its fields.
func ParamsFrom(schema interface{}) (Params, error) {
	if err := schemaValidator.Struct(schema); err != nil {
		return nil, fmt.Errorf("Invalid command parameters: %w", err)
	}

	var params map[string]interface{}
	if err := mapstructure.Decode(schema, &params); err != nil {
		return nil, fmt.Errorf("Error decoding command parameters: %w", err)
	}

	return Params(params), nil
}
