// Package alerts watches caregiver certifications and emits expiry alerts.
//
// The scanner walks live certifications on a fixed cadence and publishes one
// alert per certification per day: expired credentials every day until
// renewed, expiring-soon credentials once the expiration date enters the
// alert window. A deduper keyed on certification and day keeps re-scans from
// double-sending.
package alerts

import (
	"context"
	"time"

	"carepath/internal/storage"
	"carepath/pkg/domain"
)

// Kind distinguishes the two alert conditions.
type Kind string

const (
	KindExpired      Kind = "certification_expired"
	KindExpiringSoon Kind = "certification_expiring_soon"
)

// Alert is the payload published when a certification needs attention.
type Alert struct {
	Kind              Kind                   `json:"kind"`
	CertificationID   domain.CertificationID `json:"certification_id"`
	CaregiverID       domain.CaregiverID     `json:"caregiver_id"`
	CertificationType string                 `json:"certification_type"`
	ExpirationDate    time.Time              `json:"expiration_date"`
	DaysUntilExpiry   int                    `json:"days_until_expiry"`
	ObservedAt        time.Time              `json:"observed_at"`
}

// Publisher delivers alerts to the downstream channel (Kafka in production,
// in-memory in tests).
type Publisher interface {
	Publish(ctx context.Context, alert Alert) error
	Close() error
}

// Deduper suppresses repeat sends of the same alert within a window.
// MarkSent returns true when the key was not yet marked, claiming it.
type Deduper interface {
	MarkSent(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// UnitOfWorkFactory yields a fresh unit of work per scan pass.
type UnitOfWorkFactory func() storage.UnitOfWork
