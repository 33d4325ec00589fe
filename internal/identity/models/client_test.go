package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"carepath/pkg/domain"
)

func TestClientAge(t *testing.T) {
	newClient := func(dob time.Time) *Client {
		c := NewClient(domain.UserID(uuid.New()), time.Now().UTC())
		c.DateOfBirth = dob
		return c
	}

	t.Run("birthday not yet reached this year", func(t *testing.T) {
		c := newClient(time.Date(1950, 8, 20, 0, 0, 0, 0, time.UTC))
		today := time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 75, c.Age(today))
	})

	t.Run("birthday today", func(t *testing.T) {
		c := newClient(time.Date(1950, 8, 20, 0, 0, 0, 0, time.UTC))
		today := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 76, c.Age(today))
	})

	t.Run("leap day birthday before March 1 of a non-leap year", func(t *testing.T) {
		c := newClient(time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC))
		today := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 25, c.Age(today))
	})

	t.Run("leap day birthday on March 1 of a non-leap year", func(t *testing.T) {
		c := newClient(time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC))
		today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 26, c.Age(today))
	})

	t.Run("leap day birthday in a leap year", func(t *testing.T) {
		c := newClient(time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC))
		today := time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 28, c.Age(today))
	})
}

func TestClientDefaults(t *testing.T) {
	c := NewClient(domain.UserID(uuid.New()), time.Now().UTC())
	assert.Equal(t, domain.ServiceTypeInHomeCare, c.ServiceType)
	assert.Nil(t, c.Latitude)
	assert.Nil(t, c.MedicalConditions)
}
