package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carepath/pkg/domain"
)

func newTestLineItem(t *testing.T, hours, rate string) *InvoiceLineItem {
	t.Helper()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return NewInvoiceLineItem(domain.InvoiceID(uuid.New()), "care services",
		decimal.RequireFromString(hours), decimal.RequireFromString(rate), now, now)
}

func withCost(li *InvoiceLineItem, cost string) *InvoiceLineItem {
	c := decimal.RequireFromString(cost)
	li.CostPerHour = &c
	return li
}

func TestLineItemTotals(t *testing.T) {
	t.Run("total is hours times rate", func(t *testing.T) {
		li := newTestLineItem(t, "8", "35")
		assert.True(t, li.Total().Equal(decimal.RequireFromString("280")))
	})

	t.Run("total cost follows the recorded cost basis", func(t *testing.T) {
		li := withCost(newTestLineItem(t, "8", "35"), "18")
		require.NotNil(t, li.TotalCost())
		assert.True(t, li.TotalCost().Equal(decimal.RequireFromString("144")))
		require.NotNil(t, li.GrossProfit())
		assert.True(t, li.GrossProfit().Equal(decimal.RequireFromString("136")))
	})
}

func TestLineItemMargin_UnknownVersusZero(t *testing.T) {
	t.Run("no cost basis means unknown margin, nil not zero", func(t *testing.T) {
		li := newTestLineItem(t, "8", "35")
		assert.Nil(t, li.TotalCost())
		assert.Nil(t, li.GrossProfit())
		assert.Nil(t, li.GrossMarginPercentage())
	})

	t.Run("zero total means undefined percentage even with a cost basis", func(t *testing.T) {
		li := withCost(newTestLineItem(t, "0", "35"), "18")
		assert.Nil(t, li.GrossMarginPercentage())
	})

	t.Run("known margin computes as a percentage", func(t *testing.T) {
		li := withCost(newTestLineItem(t, "8", "35"), "21")
		pct := li.GrossMarginPercentage()
		require.NotNil(t, pct)
		assert.True(t, pct.Equal(decimal.RequireFromString("40")), "got %s", pct)
	})

	t.Run("zero-cost basis is a known one hundred percent margin", func(t *testing.T) {
		li := withCost(newTestLineItem(t, "8", "35"), "0")
		pct := li.GrossMarginPercentage()
		require.NotNil(t, pct)
		assert.True(t, pct.Equal(decimal.RequireFromString("100")), "got %s", pct)
	})
}
