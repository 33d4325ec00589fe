package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"carepath/pkg/domain"
)

func TestCertificationExpiry(t *testing.T) {
	now := time.Date(2026, 2, 16, 12, 0, 0, 0, time.UTC)
	caregiverID := domain.CaregiverID(uuid.New())

	newCert := func(expiration time.Time) *CaregiverCertification {
		cert := NewCaregiverCertification(caregiverID, CertificationCNA, now.AddDate(-1, 0, 0))
		cert.ExpirationDate = expiration
		return cert
	}

	t.Run("expiring 15 days out is soon, not expired", func(t *testing.T) {
		cert := newCert(now.AddDate(0, 0, 15))
		assert.False(t, cert.IsExpired(now))
		assert.True(t, cert.IsExpiringSoon(now))
	})

	t.Run("expiring 31 days out is neither", func(t *testing.T) {
		cert := newCert(now.AddDate(0, 0, 31))
		assert.False(t, cert.IsExpired(now))
		assert.False(t, cert.IsExpiringSoon(now))
	})

	t.Run("lapsed yesterday is expired, never soon", func(t *testing.T) {
		cert := newCert(now.AddDate(0, 0, -1))
		assert.True(t, cert.IsExpired(now))
		assert.False(t, cert.IsExpiringSoon(now))
	})

	t.Run("expiring this instant is not yet expired", func(t *testing.T) {
		cert := newCert(now)
		assert.False(t, cert.IsExpired(now))
		assert.True(t, cert.IsExpiringSoon(now))
	})

	t.Run("expired and soon are mutually exclusive across the window", func(t *testing.T) {
		for days := -40; days <= 40; days++ {
			cert := newCert(now.AddDate(0, 0, days))
			assert.False(t, cert.IsExpired(now) && cert.IsExpiringSoon(now),
				"both true at %d days", days)
		}
	})
}

func TestCertificationType_IsBoardCredential(t *testing.T) {
	board := []CertificationType{CertificationCNA, CertificationLPN, CertificationRN, CertificationGNA, CertificationCRMA}
	for _, ct := range board {
		assert.True(t, ct.IsBoardCredential(), "%s should be a board credential", ct)
	}
	assert.False(t, CertificationCPR.IsBoardCredential())
	assert.False(t, CertificationFirstAid.IsBoardCredential())
}
