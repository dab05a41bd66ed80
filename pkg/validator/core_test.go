package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulebuilder/pkg/validator"
)

func TestApply(t *testing.T) {
	pass := validator.Rule{Check: func() bool { return true }}
	fail := func(field, msg string) validator.Rule {
		return validator.Rule{
			Check: func() bool { return false },
			Error: validator.ValidationError{Field: field, Message: msg},
		}
	}

	t.Run("no failures", func(t *testing.T) {
		assert.NoError(t, validator.Apply(pass, pass))
		assert.NoError(t, validator.Apply())
	})

	t.Run("collects failures in order", func(t *testing.T) {
		err := validator.Apply(fail("a", "first"), pass, fail("b", "second"), fail("a", "third"))
		require.Error(t, err)

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 3)
		assert.Equal(t, []string{"first", "second", "third"}, verrs.Messages())
		assert.Equal(t, []string{"a", "b"}, verrs.Fields())
		assert.Equal(t, []string{"first", "third"}, verrs.Get("a"))
		assert.True(t, verrs.Has("b"))
		assert.False(t, verrs.Has("c"))
		assert.Equal(t, "validation failed: a: first; b: second; a: third", err.Error())
	})

	t.Run("nil check fails", func(t *testing.T) {
		err := validator.Apply(validator.Rule{Error: validator.ValidationError{Field: "x"}})
		assert.True(t, validator.IsValidationError(err))
	})
}

func TestValidationErrors(t *testing.T) {
	var verrs validator.ValidationErrors
	assert.True(t, verrs.IsEmpty())
	assert.Equal(t, "validation failed", verrs.Error())

	verrs.Add(validator.ValidationError{Field: "name", Message: "bad"})
	assert.False(t, verrs.IsEmpty())

	wrapped := fmt.Errorf("saving user: %w", verrs)
	assert.True(t, validator.IsValidationError(wrapped))
	assert.Equal(t, verrs, validator.ExtractValidationErrors(wrapped))

	assert.False(t, validator.IsValidationError(errors.New("plain")))
	assert.False(t, validator.IsValidationError(nil))
	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("plain")))
}
