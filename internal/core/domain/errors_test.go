package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrInvalidSchema", ErrInvalidSchema},
		{"ErrUnsupportedSource", ErrUnsupportedSource},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrTemplateNotFound", ErrTemplateNotFound},
		{"ErrSelectionConflict", ErrSelectionConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrInvalidSchema tests ErrInvalidSchema error
func TestErrInvalidSchema(t *testing.T) {
	assert.Equal(t, "invalid schema", ErrInvalidSchema.Error())
	assert.True(t, errors.Is(ErrInvalidSchema, ErrInvalidSchema))
	assert.False(t, errors.Is(ErrInvalidSchema, ErrInvalidInput))
}

// TestErrors_Uniqueness tests that all errors are distinct
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrNotImplemented,
		ErrInvalidSchema,
		ErrUnsupportedSource,
		ErrRateLimited,
		ErrTemplateNotFound,
		ErrSelectionConflict,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

// TestErrors_WithWrapping tests error wrapping behavior
func TestErrors_WithWrapping(t *testing.T) {
	wrappedErr := fmt.Errorf("decode pack.yaml: %w", ErrInvalidSchema)

	assert.True(t, errors.Is(wrappedErr, ErrInvalidSchema))
	assert.Contains(t, wrappedErr.Error(), "invalid schema")
}
