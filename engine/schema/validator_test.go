package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingValidator struct {
	err error
}

func (v *failingValidator) Validate(_ context.Context) error {
	return v.err
}

func TestCompositeValidator(t *testing.T) {
	ctx := context.Background()

	t.Run("Should pass with no validators", func(t *testing.T) {
		assert.NoError(t, NewCompositeValidator().Validate(ctx))
	})

	t.Run("Should return the first failure", func(t *testing.T) {
		first := errors.New("first")
		v := NewCompositeValidator(
			&failingValidator{err: nil},
			&failingValidator{err: first},
			&failingValidator{err: errors.New("second")},
		)
		assert.ErrorIs(t, v.Validate(ctx), first)
	})

	t.Run("Should run validators added after construction", func(t *testing.T) {
		v := NewCompositeValidator()
		v.AddValidator(&failingValidator{err: errors.New("added")})
		assert.Error(t, v.Validate(ctx))
	})
}

func TestStructValidator(t *testing.T) {
	ctx := context.Background()

	type target struct {
		Name string `validate:"required"`
		Port int    `validate:"omitempty,min=1,max=65535"`
	}

	t.Run("Should accept a valid struct", func(t *testing.T) {
		assert.NoError(t, NewStructValidator(&target{Name: "tabhost", Port: 7420}).Validate(ctx))
	})

	t.Run("Should reject a missing required field", func(t *testing.T) {
		assert.Error(t, NewStructValidator(&target{Port: 7420}).Validate(ctx))
	})

	t.Run("Should reject an out-of-range value", func(t *testing.T) {
		assert.Error(t, NewStructValidator(&target{Name: "tabhost", Port: 70000}).Validate(ctx))
	})

	t.Run("Should support custom validation tags", func(t *testing.T) {
		type custom struct {
			Level string `validate:"loglevel"`
		}
		v := NewStructValidator(&custom{Level: "info"})
		require.NoError(t, v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "debug", "info", "warn", "error":
				return true
			}
			return false
		}))
		assert.NoError(t, v.Validate(ctx))
	})
}
