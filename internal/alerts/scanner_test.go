package alerts

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identity "carepath/internal/identity/models"
	"carepath/internal/storage"
	"carepath/internal/storage/memory"
	"carepath/pkg/domain"
	"carepath/pkg/testutil"
)

func seedCertification(t *testing.T, uow storage.UnitOfWork, expiration time.Time, now time.Time) *identity.CaregiverCertification {
	t.Helper()
	ctx := testutil.Context(now)
	cert := identity.NewCaregiverCertification(domain.CaregiverID(uuid.New()), identity.CertificationRN, now)
	cert.ExpirationDate = expiration
	require.NoError(t, uow.CaregiverCertifications().Add(ctx, cert))
	_, err := uow.SaveChanges(ctx)
	require.NoError(t, err)
	return cert
}

func TestScannerScanAt(t *testing.T) {
	now := time.Date(2026, 2, 16, 6, 0, 0, 0, time.UTC)

	newScanner := func(uow *memory.UnitOfWork, pub *MemoryPublisher) *Scanner {
		return NewScanner(func() storage.UnitOfWork { return uow }, pub, NewMemoryDeduper())
	}

	t.Run("flags expired and expiring-soon credentials", func(t *testing.T) {
		uow := memory.NewUnitOfWork()
		expired := seedCertification(t, uow, now.AddDate(0, 0, -10), now)
		soon := seedCertification(t, uow, now.AddDate(0, 0, 15), now)
		seedCertification(t, uow, now.AddDate(0, 0, 45), now) // healthy, no alert

		pub := NewMemoryPublisher()
		require.NoError(t, newScanner(uow, pub).ScanAt(testutil.Context(now), now))

		alerts := pub.Alerts()
		require.Len(t, alerts, 2)

		byCert := map[domain.CertificationID]Alert{}
		for _, a := range alerts {
			byCert[a.CertificationID] = a
		}
		assert.Equal(t, KindExpired, byCert[expired.ID].Kind)
		assert.Equal(t, KindExpiringSoon, byCert[soon.ID].Kind)
		assert.Equal(t, 15, byCert[soon.ID].DaysUntilExpiry)
		assert.True(t, byCert[expired.ID].DaysUntilExpiry < 0)
	})

	t.Run("dedupes repeat scans within the same day", func(t *testing.T) {
		uow := memory.NewUnitOfWork()
		seedCertification(t, uow, now.AddDate(0, 0, 5), now)

		pub := NewMemoryPublisher()
		scanner := newScanner(uow, pub)
		ctx := testutil.Context(now)
		require.NoError(t, scanner.ScanAt(ctx, now))
		require.NoError(t, scanner.ScanAt(ctx, now.Add(4*time.Hour)))

		assert.Len(t, pub.Alerts(), 1)
	})

	t.Run("alerts again on the next day", func(t *testing.T) {
		uow := memory.NewUnitOfWork()
		seedCertification(t, uow, now.AddDate(0, 0, -2), now)

		pub := NewMemoryPublisher()
		deduper := NewMemoryDeduper()
		scanner := NewScanner(func() storage.UnitOfWork { return uow }, pub, deduper)
		ctx := testutil.Context(now)
		require.NoError(t, scanner.ScanAt(ctx, now))

		// The redis TTL handles expiry in production; the memory deduper
		// keys include the day, so the next calendar day republishes.
		require.NoError(t, scanner.ScanAt(ctx, now.AddDate(0, 0, 1)))
		assert.Len(t, pub.Alerts(), 2)
	})

	t.Run("soft-deleted certifications never alert", func(t *testing.T) {
		uow := memory.NewUnitOfWork()
		cert := seedCertification(t, uow, now.AddDate(0, 0, -10), now)
		ctx := testutil.Context(now)
		require.NoError(t, uow.CaregiverCertifications().Delete(ctx, cert))
		_, err := uow.SaveChanges(ctx)
		require.NoError(t, err)

		pub := NewMemoryPublisher()
		require.NoError(t, newScanner(uow, pub).ScanAt(ctx, now))
		assert.Empty(t, pub.Alerts())
	})
}
