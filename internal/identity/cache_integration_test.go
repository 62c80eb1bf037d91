//go:build integration

package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"cleanroom/internal/identity"
	"cleanroom/pkg/testutil/containers"
)

type countingChecker struct {
	valid bool
	calls int
}

func (c *countingChecker) Valid(context.Context, string) (bool, error) {
	c.calls++
	return c.valid, nil
}

type CachedCheckerSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestCachedCheckerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedCheckerSuite))
}

func (s *CachedCheckerSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *CachedCheckerSuite) SetupTest() {
	s.Require().NoError(s.redis.Client.FlushAll(context.Background()).Err())
}

func (s *CachedCheckerSuite) TestReadThrough() {
	ctx := context.Background()
	inner := &countingChecker{valid: true}
	cached := identity.NewCachedChecker(inner, s.redis.Client, time.Minute)

	valid, err := cached.Valid(ctx, "123-45-6789")
	s.Require().NoError(err)
	s.True(valid)
	s.Equal(1, inner.calls)

	// Second lookup is served from the cache.
	valid, err = cached.Valid(ctx, "123-45-6789")
	s.Require().NoError(err)
	s.True(valid)
	s.Equal(1, inner.calls)

	// A different value misses.
	_, err = cached.Valid(ctx, "987-65-4321")
	s.Require().NoError(err)
	s.Equal(2, inner.calls)
}

func (s *CachedCheckerSuite) TestNegativeVerdictsAreCachedToo() {
	ctx := context.Background()
	inner := &countingChecker{valid: false}
	cached := identity.NewCachedChecker(inner, s.redis.Client, time.Minute)

	for i := 0; i < 3; i++ {
		valid, err := cached.Valid(ctx, "000-00-0000")
		s.Require().NoError(err)
		s.False(valid)
	}
	s.Equal(1, inner.calls)
}

func (s *CachedCheckerSuite) TestInvalidate() {
	ctx := context.Background()
	inner := &countingChecker{valid: true}
	cached := identity.NewCachedChecker(inner, s.redis.Client, time.Minute)

	_, err := cached.Valid(ctx, "123-45-6789")
	s.Require().NoError(err)
	s.Require().NoError(cached.Invalidate(ctx, "123-45-6789"))

	_, err = cached.Valid(ctx, "123-45-6789")
	s.Require().NoError(err)
	s.Equal(2, inner.calls)
}

func (s *CachedCheckerSuite) TestRawValuesNeverReachRedis() {
	ctx := context.Background()
	cached := identity.NewCachedChecker(&countingChecker{valid: true}, s.redis.Client, time.Minute)

	_, err := cached.Valid(ctx, "123-45-6789")
	s.Require().NoError(err)

	keys, err := s.redis.Client.Keys(ctx, "*").Result()
	s.Require().NoError(err)
	s.Require().Len(keys, 1)
	s.NotContains(keys[0], "123-45-6789")
	s.Contains(keys[0], "identity:valid:")
}
