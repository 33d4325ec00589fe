package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "carepath/pkg/domain-errors"
)

func TestParseID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseShiftID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseInvoiceID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseCaregiverID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, CaregiverID(valid), id)
	})

	t.Run("String round-trips", func(t *testing.T) {
		id := ClientID(uuid.New())
		parsed, err := ParseClientID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})
}

// Typed IDs are distinct types; cross-type assignment fails to compile:
//
//	var _ UserID = CaregiverID(uuid.New()) // compile error
func TestTypeDistinction(t *testing.T) {
	userID := UserID(uuid.New())
	caregiverID := CaregiverID(uuid.New())
	assert.NotEqual(t, uuid.UUID(userID), uuid.UUID(caregiverID))
}
