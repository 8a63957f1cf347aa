package astm_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/labwire/astm"
)

func TestValueTypeError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := astm.NewValueTypeError("seq", 1.5, "integer value or digit text")
		assert.Equal(t, `astm: field "seq": unexpected float64 value, want integer value or digit text`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := astm.NewValueTypeError("seq", true, "text")
		assert.True(t, errors.Is(err, astm.ErrInvalidValueType))
	})

	t.Run("IsInvalidValueType", func(t *testing.T) {
		err := astm.NewValueTypeError("seq", true, "text")
		assert.True(t, astm.IsInvalidValueType(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, astm.IsInvalidValueType(wrapped))

		// Sentinel error
		assert.True(t, astm.IsInvalidValueType(astm.ErrInvalidValueType))

		// Non-matching error
		assert.False(t, astm.IsInvalidValueType(errors.New("other error")))
		assert.False(t, astm.IsInvalidValueType(nil))
	})
}

func TestValueError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := astm.NewValueError("sex", "FOO", "value not in allowed set")
		assert.Equal(t, `astm: field "sex": value not in allowed set: FOO`, err.Error())
	})

	t.Run("ErrorWithoutValue", func(t *testing.T) {
		err := astm.NewValueError("seq", nil, "value is required")
		assert.Equal(t, `astm: field "seq": value is required`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := astm.NewValueError("sex", "FOO", "value not in allowed set")
		assert.True(t, errors.Is(err, astm.ErrInvalidValue))
	})

	t.Run("IsInvalidValue", func(t *testing.T) {
		err := astm.NewValueError("sample_id", "X12", "text longer than 2")
		assert.True(t, astm.IsInvalidValue(err))

		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, astm.IsInvalidValue(wrapped))

		assert.True(t, astm.IsInvalidValue(astm.ErrInvalidValue))
		assert.False(t, astm.IsInvalidValue(errors.New("other error")))
		assert.False(t, astm.IsInvalidValue(nil))
	})
}

func TestReassignmentError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := astm.NewReassignmentError("type", "H", "A")
		assert.Equal(t, `astm: field "type": bound to H, cannot reassign to A`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := astm.NewReassignmentError("type", "H", "A")
		assert.True(t, errors.Is(err, astm.ErrReassignment))
	})

	t.Run("IsReassignment", func(t *testing.T) {
		err := astm.NewReassignmentError("code", "N", "F")
		assert.True(t, astm.IsReassignment(err))

		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, astm.IsReassignment(wrapped))

		assert.True(t, astm.IsReassignment(astm.ErrReassignment))
		assert.False(t, astm.IsReassignment(errors.New("other error")))
		assert.False(t, astm.IsReassignment(nil))
	})
}

func TestSchemaDefinitionErrors(t *testing.T) {
	t.Run("DuplicateField", func(t *testing.T) {
		err := astm.NewDuplicateFieldError("Header", "type")
		assert.Equal(t, `astm: schema "Header": duplicate field "type"`, err.Error())
		assert.True(t, errors.Is(err, astm.ErrDuplicateField))
		assert.True(t, astm.IsDuplicateField(err))
		assert.True(t, astm.IsDuplicateField(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, astm.IsDuplicateField(nil))
	})

	t.Run("MissingFieldName", func(t *testing.T) {
		err := astm.NewMissingFieldNameError("Header", 3)
		assert.Equal(t, `astm: schema "Header": field at index 3 has no name`, err.Error())
		assert.True(t, errors.Is(err, astm.ErrMissingFieldName))
		assert.True(t, astm.IsMissingFieldName(err))
		assert.True(t, astm.IsMissingFieldName(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, astm.IsMissingFieldName(nil))
	})
}

func TestUnexpectedArgumentError(t *testing.T) {
	t.Run("Names", func(t *testing.T) {
		err := astm.NewUnexpectedArgumentError("Patient", "weight", "height")
		assert.Equal(t, `astm: schema "Patient": unexpected arguments weight, height`, err.Error())
		assert.True(t, errors.Is(err, astm.ErrUnexpectedArgument))
	})

	t.Run("PositionalOverflow", func(t *testing.T) {
		err := astm.NewArgumentCountError("Terminator", 5, 3)
		assert.Equal(t, `astm: schema "Terminator": 5 positional arguments for 3 fields`, err.Error())
		assert.True(t, errors.Is(err, astm.ErrUnexpectedArgument))
	})

	t.Run("IsUnexpectedArgument", func(t *testing.T) {
		err := astm.NewUnexpectedArgumentError("Patient", "weight")
		assert.True(t, astm.IsUnexpectedArgument(err))

		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, astm.IsUnexpectedArgument(wrapped))

		assert.True(t, astm.IsUnexpectedArgument(astm.ErrUnexpectedArgument))
		assert.False(t, astm.IsUnexpectedArgument(errors.New("other error")))
		assert.False(t, astm.IsUnexpectedArgument(nil))
	})
}

func TestItemNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := astm.NewItemNotFoundError(7)
		assert.Equal(t, "astm: item not found: 7", err.Error())
	})

	t.Run("IsItemNotFound", func(t *testing.T) {
		err := astm.NewItemNotFoundError("sample_id")
		assert.True(t, errors.Is(err, astm.ErrItemNotFound))
		assert.True(t, astm.IsItemNotFound(err))
		assert.True(t, astm.IsItemNotFound(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, astm.IsItemNotFound(nil))
	})
}

func TestUnsupportedError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := astm.NewUnsupportedError("in-place sorting")
		assert.Equal(t, "astm: in-place sorting is not supported", err.Error())
	})

	t.Run("IsUnsupported", func(t *testing.T) {
		err := astm.NewUnsupportedError("in-place sorting")
		assert.True(t, errors.Is(err, astm.ErrUnsupported))
		assert.True(t, astm.IsUnsupported(err))
		assert.True(t, astm.IsUnsupported(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, astm.IsUnsupported(nil))
	})
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		astm.ErrInvalidValueType,
		astm.ErrInvalidValue,
		astm.ErrReassignment,
		astm.ErrDuplicateField,
		astm.ErrMissingFieldName,
		astm.ErrUnexpectedArgument,
		astm.ErrItemNotFound,
		astm.ErrUnsupported,
	}
	for _, err := range sentinels {
		assert.ErrorContains(t, err, "astm: ")
	}
}

func BenchmarkErrors(b *testing.B) {
	b.Run("NewValueTypeError", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = astm.NewValueTypeError("seq", i, "integer value or digit text")
		}
	})

	b.Run("IsInvalidValue", func(b *testing.B) {
		err := fmt.Errorf("wrapper: %w", astm.NewValueError("sex", "FOO", "value not in allowed set"))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = astm.IsInvalidValue(err)
		}
	})
}
