//go:build integration

package bucket_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"medcalc/internal/ratelimit/store/bucket"
	"medcalc/pkg/testutil/containers"
)

type RedisBucketStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	now   time.Time
	store *bucket.RedisBucketStore
}

func TestRedisBucketStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisBucketStoreSuite))
}

func (s *RedisBucketStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *RedisBucketStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.now = time.Now().Truncate(time.Millisecond)
	s.store = bucket.NewRedis(s.redis.Client, bucket.WithRedisClock(func() time.Time { return s.now }))
}

func (s *RedisBucketStoreSuite) TestAllowUpToLimit() {
	ctx := context.Background()
	for i := range 3 {
		res, err := s.store.Allow(ctx, "ip:10.0.0.1:dispatch", 3, time.Minute)
		s.Require().NoError(err)
		s.True(res.Allowed)
		s.Equal(3-(i+1), res.Remaining)
	}

	res, err := s.store.Allow(ctx, "ip:10.0.0.1:dispatch", 3, time.Minute)
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.Equal(60, res.RetryAfter)

	count, err := s.redis.Client.ZCard(ctx, "medcalc:rl:ip:10.0.0.1:dispatch").Result()
	s.Require().NoError(err)
	s.Equal(int64(3), count, "the denied call is not recorded")
}

func (s *RedisBucketStoreSuite) TestWindowSlides() {
	ctx := context.Background()
	_, err := s.store.AllowN(ctx, "ip:10.0.0.2:dispatch", 2, 2, time.Minute)
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute + time.Millisecond)
	res, err := s.store.Allow(ctx, "ip:10.0.0.2:dispatch", 2, time.Minute)
	s.Require().NoError(err)
	s.True(res.Allowed)
	s.Equal(1, res.Remaining)
}

func (s *RedisBucketStoreSuite) TestWindowKeyExpires() {
	ctx := context.Background()
	_, err := s.store.AllowN(ctx, "ip:10.0.0.3:dispatch", 5, 5, time.Minute)
	s.Require().NoError(err)

	ttl, err := s.redis.Client.PTTL(ctx, "medcalc:rl:ip:10.0.0.3:dispatch").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}

// TestConcurrentAllow verifies the script admits exactly limit requests when
// many clients race on one key.
func (s *RedisBucketStoreSuite) TestConcurrentAllow() {
	ctx := context.Background()
	const limit = 25
	var allowed atomic.Int32
	var wg sync.WaitGroup

	for range 60 {
		wg.Go(func() {
			res, err := s.store.Allow(ctx, "ip:10.0.0.4:dispatch", limit, time.Minute)
			if s.NoError(err) && res.Allowed {
				allowed.Add(1)
			}
		})
	}
	wg.Wait()
	s.Equal(int32(limit), allowed.Load())
}
