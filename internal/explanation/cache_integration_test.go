//go:build integration

package explanation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"visapath/internal/explanation"
	"visapath/pkg/platform/sentinel"
	"visapath/pkg/testutil/containers"
)

type CacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *explanation.Cache
	ctx   context.Context
}

func TestCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.ctx = context.Background()
}

func (s *CacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.cache = explanation.NewCache(s.redis.Client, time.Minute)
}

func (s *CacheSuite) TestPutGetInvalidate() {
	s.Run("miss before put", func() {
		_, err := s.cache.Get(s.ctx, "app-1", "passport")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("round-trips the text", func() {
		s.Require().NoError(s.cache.Put(s.ctx, "app-1", "passport", "You need a passport valid for six months."))

		text, err := s.cache.Get(s.ctx, "app-1", "passport")
		s.Require().NoError(err)
		s.Equal("You need a passport valid for six months.", text)
	})

	s.Run("keys are scoped per application and document", func() {
		s.Require().NoError(s.cache.Put(s.ctx, "app-1", "passport", "first"))
		s.Require().NoError(s.cache.Put(s.ctx, "app-2", "passport", "second"))
		s.Require().NoError(s.cache.Put(s.ctx, "app-1", "photo", "third"))

		text, err := s.cache.Get(s.ctx, "app-1", "passport")
		s.Require().NoError(err)
		s.Equal("first", text)
	})

	s.Run("invalidate removes the entry", func() {
		s.Require().NoError(s.cache.Put(s.ctx, "app-1", "passport", "stale"))
		s.Require().NoError(s.cache.Invalidate(s.ctx, "app-1", "passport"))

		_, err := s.cache.Get(s.ctx, "app-1", "passport")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("invalidating a missing entry is not an error", func() {
		s.NoError(s.cache.Invalidate(s.ctx, "app-9", "passport"))
	})
}

func (s *CacheSuite) TestTTLExpiry() {
	short := explanation.NewCache(s.redis.Client, 500*time.Millisecond)
	s.Require().NoError(short.Put(s.ctx, "app-1", "passport", "ephemeral"))

	text, err := short.Get(s.ctx, "app-1", "passport")
	s.Require().NoError(err)
	s.Equal("ephemeral", text)

	s.Eventually(func() bool {
		_, err := short.Get(s.ctx, "app-1", "passport")
		return err != nil
	}, 3*time.Second, 100*time.Millisecond)
}
