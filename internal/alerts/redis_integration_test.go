//go:build integration

package alerts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"carepath/internal/alerts"
	"carepath/pkg/testutil/containers"
)

type RedisDeduperSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	ctx   context.Context
}

func TestRedisDeduperSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisDeduperSuite))
}

func (s *RedisDeduperSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *RedisDeduperSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func (s *RedisDeduperSuite) TestFirstClaimWins() {
	deduper := alerts.NewRedisDeduper(s.redis.Client)

	claimed, err := deduper.MarkSent(s.ctx, "alerts:cert:abc:expired:2026-09-01", time.Minute)
	s.Require().NoError(err)
	s.True(claimed)

	claimed, err = deduper.MarkSent(s.ctx, "alerts:cert:abc:expired:2026-09-01", time.Minute)
	s.Require().NoError(err)
	s.False(claimed, "second instance must not send the same alert")
}

func (s *RedisDeduperSuite) TestDistinctKeysAreIndependent() {
	deduper := alerts.NewRedisDeduper(s.redis.Client)

	for _, key := range []string{
		"alerts:cert:abc:expired:2026-09-01",
		"alerts:cert:abc:expiring_soon:2026-09-01",
		"alerts:cert:abc:expired:2026-09-02",
	} {
		claimed, err := deduper.MarkSent(s.ctx, key, time.Minute)
		s.Require().NoError(err)
		s.True(claimed, "key %s", key)
	}
}

func (s *RedisDeduperSuite) TestClaimExpires() {
	deduper := alerts.NewRedisDeduper(s.redis.Client)

	claimed, err := deduper.MarkSent(s.ctx, "alerts:cert:ttl:expired:2026-09-01", 100*time.Millisecond)
	s.Require().NoError(err)
	s.True(claimed)

	s.Eventually(func() bool {
		claimed, err := deduper.MarkSent(s.ctx, "alerts:cert:ttl:expired:2026-09-01", time.Minute)
		return err == nil && claimed
	}, 2*time.Second, 50*time.Millisecond, "claim must be reclaimable after the TTL lapses")
}
