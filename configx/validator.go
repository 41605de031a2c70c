package configx

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidatorOption configures the validator.
type ValidatorOption func(*validator.Validate)

// NewValidator creates a validator with required-struct checks enabled.
func NewValidator(opts ...ValidatorOption) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithTagNames reports fields under the name found in the given struct tag,
// so errors for hatch.yaml say "generators" rather than "Generators".
// Fields tagged "-" keep no name; untagged fields fall back to the Go name.
func WithTagNames(tag string) ValidatorOption {
	return func(v *validator.Validate) {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// ValidateStruct validates target with v, or with a fresh validator when v is nil.
func ValidateStruct(v *validator.Validate, target any) error {
	if v == nil {
		v = NewValidator()
	}
	if err := v.Struct(target); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
