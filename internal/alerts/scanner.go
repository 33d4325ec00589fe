package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	identity "carepath/internal/identity/models"
	"carepath/pkg/requestcontext"
)

// dedupeTTL keeps a sent alert suppressed for the rest of its day plus
// slack for clock drift between scanner instances.
const dedupeTTL = 26 * time.Hour

// Scanner periodically walks live certifications and publishes expiry
// alerts through the configured publisher.
type Scanner struct {
	newUow    UnitOfWorkFactory
	publisher Publisher
	deduper   Deduper
	logger    *slog.Logger
	metrics   *Metrics
}

// ScannerOption configures the Scanner.
type ScannerOption func(*Scanner)

// WithLogger sets a logger for scan reporting.
func WithLogger(logger *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) ScannerOption {
	return func(s *Scanner) {
		s.metrics = m
	}
}

// NewScanner creates a certification-expiry scanner.
func NewScanner(newUow UnitOfWorkFactory, publisher Publisher, deduper Deduper, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		newUow:    newUow,
		publisher: publisher,
		deduper:   deduper,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run scans on the given interval until ctx is cancelled. A failed pass is
// logged and the next tick retries; only ctx cancellation stops the loop.
func (s *Scanner) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.ScanAt(ctx, requestcontext.Now(ctx)); err != nil {
				s.logger.ErrorContext(ctx, "certification expiry scan failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ScanAt runs one pass against the clock instant now. Exported so tests and
// admin tooling can trigger a deterministic pass.
func (s *Scanner) ScanAt(ctx context.Context, now time.Time) error {
	uow := s.newUow()
	defer func() { _ = uow.Close(ctx) }()

	certs, err := uow.CaregiverCertifications().Find(ctx, func(c *identity.CaregiverCertification) bool {
		return c.IsExpired(now) || c.IsExpiringSoon(now)
	})
	if err != nil {
		return err
	}

	for _, cert := range certs {
		alert := buildAlert(cert, now)

		sent, err := s.deduper.MarkSent(ctx, dedupeKey(alert, now), dedupeTTL)
		if err != nil {
			return err
		}
		if !sent {
			continue
		}

		if err := s.publisher.Publish(ctx, alert); err != nil {
			return err
		}
		if s.metrics != nil {
			s.metrics.IncAlertsPublished(string(alert.Kind))
		}
	}

	s.logger.DebugContext(ctx, "certification expiry scan complete",
		"flagged", len(certs))
	return nil
}

func buildAlert(cert *identity.CaregiverCertification, now time.Time) Alert {
	kind := KindExpiringSoon
	if cert.IsExpired(now) {
		kind = KindExpired
	}
	days := int(cert.ExpirationDate.Sub(now).Hours() / 24)
	return Alert{
		Kind:              kind,
		CertificationID:   cert.ID,
		CaregiverID:       cert.CaregiverID,
		CertificationType: string(cert.Type),
		ExpirationDate:    cert.ExpirationDate,
		DaysUntilExpiry:   days,
		ObservedAt:        now,
	}
}

// dedupeKey is one alert per certification per kind per day.
func dedupeKey(alert Alert, now time.Time) string {
	return fmt.Sprintf("alerts:cert:%s:%s:%s",
		alert.CertificationID, alert.Kind, now.UTC().Format("2006-01-02"))
}
