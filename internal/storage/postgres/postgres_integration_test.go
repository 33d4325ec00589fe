//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	identity "carepath/internal/identity/models"
	scheduling "carepath/internal/scheduling/models"
	"carepath/internal/storage"
	"carepath/internal/storage/postgres"
	"carepath/pkg/domain"
	dErrors "carepath/pkg/domain-errors"
	"carepath/pkg/testutil"
	"carepath/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg  *containers.PostgresContainer
	ctx context.Context
	now time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
}

func (s *PostgresStoreSuite) SetupTest() {
	s.now = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = testutil.Context(s.now)
	s.Require().NoError(s.pg.TruncateAll(context.Background()))
}

func (s *PostgresStoreSuite) newUow() *postgres.UnitOfWork {
	return postgres.NewUnitOfWork(s.pg.Pool)
}

func (s *PostgresStoreSuite) seedUser(uow *postgres.UnitOfWork, email string) *identity.User {
	user := identity.NewUser(identity.RoleCaregiver, s.now)
	user.Email = email
	s.Require().NoError(uow.Users().Add(s.ctx, user))
	n, err := uow.SaveChanges(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(1, n)
	return user
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	uow := s.newUow()
	defer uow.Close(s.ctx)

	user := identity.NewUser(identity.RoleCoordinator, s.now)
	user.Email = "round.trip@example.com"
	user.FirstName = "Ana"
	city := "Baltimore"
	user.City = &city
	s.Require().NoError(uow.Users().Add(s.ctx, user))

	n, err := uow.SaveChanges(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	found, err := s.newUow().Users().GetByID(s.ctx, user.RecordID())
	s.Require().NoError(err)
	s.Equal(user.Email, found.Email)
	s.Equal("Ana", found.FirstName)
	s.Require().NotNil(found.City)
	s.Equal("Baltimore", *found.City)
	s.Nil(found.Address)
	s.WithinDuration(s.now, found.CreatedAt, time.Second)
}

func (s *PostgresStoreSuite) TestCaregiverCountersAndDecimals() {
	uow := s.newUow()
	defer uow.Close(s.ctx)

	user := s.seedUser(uow, "decimals@example.com")

	caregiver := identity.NewCaregiver(user.ID, s.now)
	caregiver.HourlyPayRate = decimal.RequireFromString("18.50")
	rating := decimal.RequireFromString("4.75")
	caregiver.AverageRating = &rating
	caregiver.RestorePerformanceCounters(148, 3)
	s.Require().NoError(uow.Caregivers().Add(s.ctx, caregiver))
	_, err := uow.SaveChanges(s.ctx)
	s.Require().NoError(err)

	found, err := s.newUow().Caregivers().GetByID(s.ctx, caregiver.RecordID())
	s.Require().NoError(err)
	s.True(found.HourlyPayRate.Equal(decimal.RequireFromString("18.50")),
		"got %s", found.HourlyPayRate)
	s.Require().NotNil(found.AverageRating)
	s.True(found.AverageRating.Equal(rating))
	s.Equal(148, found.TotalShiftsCompleted())
	s.Equal(3, found.NoShowCount())
}

func (s *PostgresStoreSuite) TestShiftNullableFields() {
	uow := s.newUow()
	defer uow.Close(s.ctx)

	user := s.seedUser(uow, "shift.owner@example.com")
	client := identity.NewClient(user.ID, s.now)
	s.Require().NoError(uow.Clients().Add(s.ctx, client))
	_, err := uow.SaveChanges(s.ctx)
	s.Require().NoError(err)

	shift := scheduling.NewShift(client.ID, domain.ServiceTypeInHomeCare,
		decimal.RequireFromString("35"), decimal.RequireFromString("18"),
		s.now, s.now.Add(8*time.Hour), s.now)
	s.Require().NoError(uow.Shifts().Add(s.ctx, shift))
	_, err = uow.SaveChanges(s.ctx)
	s.Require().NoError(err)

	found, err := s.newUow().Shifts().GetByID(s.ctx, shift.RecordID())
	s.Require().NoError(err)
	s.Nil(found.CaregiverID)
	s.Nil(found.ActualStartTime)
	s.Nil(found.OvertimePayRate)
	s.True(found.BillRate.Equal(decimal.RequireFromString("35")))
	s.Equal(scheduling.ShiftScheduled, found.Status)
}

func (s *PostgresStoreSuite) TestSoftDeleteFilter() {
	uow := s.newUow()
	defer uow.Close(s.ctx)

	user := s.seedUser(uow, "deleted@example.com")

	s.Require().NoError(uow.Users().Delete(s.ctx, user))
	_, err := uow.SaveChanges(s.ctx)
	s.Require().NoError(err)

	reader := s.newUow()
	_, err = reader.Users().GetByID(s.ctx, user.RecordID())
	s.Require().ErrorIs(err, storage.ErrNotFound)

	all, err := reader.Users().GetAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)

	count, err := reader.Users().Count(s.ctx, nil)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *PostgresStoreSuite) TestUpdateStampsAudit() {
	uow := s.newUow()
	defer uow.Close(s.ctx)

	user := s.seedUser(uow, "touched@example.com")

	user.FirstName = "Renamed"
	s.Require().NoError(uow.Users().Update(s.ctx, user))
	_, err := uow.SaveChanges(s.ctx)
	s.Require().NoError(err)

	found, err := s.newUow().Users().GetByID(s.ctx, user.RecordID())
	s.Require().NoError(err)
	s.Equal("Renamed", found.FirstName)
	s.Require().NotNil(found.UpdatedAt)
	s.Require().NotNil(found.UpdatedBy)
	s.Equal(testutil.Actor, *found.UpdatedBy)
}

func (s *PostgresStoreSuite) TestFindOrdering() {
	uow := s.newUow()
	defer uow.Close(s.ctx)

	for i, email := range []string{"x@example.com", "y@example.com", "z@example.com"} {
		user := identity.NewUser(identity.RoleClient, s.now.Add(time.Duration(i)*time.Minute))
		user.Email = email
		s.Require().NoError(uow.Users().Add(s.ctx, user))
	}
	_, err := uow.SaveChanges(s.ctx)
	s.Require().NoError(err)

	all, err := s.newUow().Users().GetAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("x@example.com", all[0].Email)
	s.Equal("z@example.com", all[2].Email)
}

func (s *PostgresStoreSuite) TestTransactionSemantics() {
	seeder := s.newUow()
	kept := s.seedUser(seeder, "kept@example.com")
	s.Require().NoError(seeder.Close(s.ctx))

	s.Run("rollback discards saved changes", func() {
		uow := s.newUow()
		defer uow.Close(s.ctx)

		s.Require().NoError(uow.BeginTransaction(s.ctx))
		s.Require().NoError(uow.Users().Delete(s.ctx, kept))
		_, err := uow.SaveChanges(s.ctx)
		s.Require().NoError(err)
		s.Require().NoError(uow.RollbackTransaction(s.ctx))

		_, err = s.newUow().Users().GetByID(s.ctx, kept.RecordID())
		s.Require().NoError(err)
	})

	s.Run("commit makes saved changes durable", func() {
		uow := s.newUow()
		defer uow.Close(s.ctx)

		fresh := identity.NewUser(identity.RoleAdmin, s.now)
		fresh.Email = "tx.commit@example.com"
		s.Require().NoError(uow.BeginTransaction(s.ctx))
		s.Require().NoError(uow.Users().Add(s.ctx, fresh))
		_, err := uow.SaveChanges(s.ctx)
		s.Require().NoError(err)
		s.Require().NoError(uow.CommitTransaction(s.ctx))

		_, err = s.newUow().Users().GetByID(s.ctx, fresh.RecordID())
		s.Require().NoError(err)
	})

	s.Run("usage errors for transaction misuse", func() {
		uow := s.newUow()
		defer uow.Close(s.ctx)

		err := uow.CommitTransaction(s.ctx)
		s.Require().ErrorIs(err, storage.ErrNoTransaction)
		s.True(dErrors.HasCode(err, dErrors.CodeUsage))

		s.Require().NoError(uow.BeginTransaction(s.ctx))
		s.Require().ErrorIs(uow.BeginTransaction(s.ctx), storage.ErrTransactionActive)
		s.Require().NoError(uow.RollbackTransaction(s.ctx))
	})
}

func (s *PostgresStoreSuite) TestEmailUniquenessAcrossLiveRecords() {
	uow := s.newUow()
	defer uow.Close(s.ctx)

	first := s.seedUser(uow, "unique@example.com")

	dupe := identity.NewUser(identity.RoleClient, s.now)
	dupe.Email = "unique@example.com"
	s.Require().NoError(uow.Users().Add(s.ctx, dupe))
	_, err := uow.SaveChanges(s.ctx)
	s.Require().Error(err, "live email uniqueness is enforced by the store")

	// After deleting the original, the address is reusable.
	cleaner := s.newUow()
	s.Require().NoError(cleaner.Users().Delete(s.ctx, first))
	_, err = cleaner.SaveChanges(s.ctx)
	s.Require().NoError(err)

	again := s.newUow()
	s.Require().NoError(again.Users().Add(s.ctx, dupe))
	_, err = again.SaveChanges(s.ctx)
	s.Require().NoError(err)
}
