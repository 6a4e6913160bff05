package schema

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// Validator is one semantic check over already-decoded data. Manifest loading
// composes several of these: struct-tag validation of the typed fields plus
// checks that tags cannot express.
type Validator interface {
	Validate(ctx context.Context) error
}

// CompositeValidator runs validators in order and stops at the first failure.
type CompositeValidator struct {
	validators []Validator
}

func NewCompositeValidator(validators ...Validator) *CompositeValidator {
	return &CompositeValidator{validators: validators}
}

func (v *CompositeValidator) AddValidator(validator Validator) {
	v.validators = append(v.validators, validator)
}

func (v *CompositeValidator) Validate(ctx context.Context) error {
	for _, validator := range v.validators {
		if err := validator.Validate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StructValidator checks a struct against its validate tags. Custom tags,
// such as the extension identifier charset, are attached per instance through
// RegisterValidation.
type StructValidator struct {
	validate *validator.Validate
	value    any
}

func NewStructValidator(value any) *StructValidator {
	return &StructValidator{
		validate: validator.New(),
		value:    value,
	}
}

func (v *StructValidator) Validate(_ context.Context) error {
	return v.validate.Struct(v.value)
}

func (v *StructValidator) RegisterValidation(tag string, fn validator.Func) error {
	return v.validate.RegisterValidation(tag, fn)
}
