package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carepath/pkg/domain"
	dErrors "carepath/pkg/domain-errors"
)

func newTestPayment(t *testing.T) *Payment {
	t.Helper()
	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	return NewPayment(domain.InvoiceID(uuid.New()), decimal.RequireFromString("100"), MethodInsurance, now)
}

func TestPaymentTransitions(t *testing.T) {
	now := time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)

	t.Run("pending settles", func(t *testing.T) {
		p := newTestPayment(t)
		require.NoError(t, p.Settle(now, "processor"))
		assert.True(t, p.IsSettled())
	})

	t.Run("pending fails with a reason", func(t *testing.T) {
		p := newTestPayment(t)
		require.NoError(t, p.Fail(now, "processor", "insufficient funds"))
		assert.Equal(t, PaymentFailed, p.Status)
		require.NotNil(t, p.FailureReason)
		assert.Equal(t, "insufficient funds", *p.FailureReason)
	})

	t.Run("settled refunds", func(t *testing.T) {
		p := newTestPayment(t)
		require.NoError(t, p.Settle(now, "processor"))
		require.NoError(t, p.Refund(now, "billing"))
		assert.Equal(t, PaymentRefunded, p.Status)
		assert.False(t, p.IsSettled())
	})

	t.Run("failed payment cannot settle or refund", func(t *testing.T) {
		p := newTestPayment(t)
		require.NoError(t, p.Fail(now, "processor", "card declined"))

		err := p.Settle(now, "processor")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		assert.Error(t, p.Refund(now, "billing"))
	})

	t.Run("pending cannot refund", func(t *testing.T) {
		p := newTestPayment(t)
		assert.Error(t, p.Refund(now, "billing"))
	})
}
