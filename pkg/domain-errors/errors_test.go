package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	t.Run("New carries its code", func(t *testing.T) {
		err := New(CodeNotFound, "record not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("Newf formats the message", func(t *testing.T) {
		err := Newf(CodeInvariantViolation, "shift in status %q cannot start", "Completed")
		assert.Contains(t, err.Error(), `"Completed"`)
	})

	t.Run("Wrap preserves the cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeInternal, "query records")
		assert.True(t, HasCode(err, CodeInternal))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("HasCode sees through fmt wrapping", func(t *testing.T) {
		inner := New(CodeUsage, "no transaction is active")
		outer := fmt.Errorf("rollback: %w", inner)
		assert.True(t, HasCode(outer, CodeUsage))
	})

	t.Run("HasCode on unrelated error is false", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("plain"), CodeValidation))
	})

	t.Run("nil error has no code", func(t *testing.T) {
		require.False(t, HasCode(nil, CodeInternal))
	})
}
