//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"uat/internal/user/models"
	"uat/pkg/testutil/containers"
)

type RedisBackendSuite struct {
	suite.Suite
	redis   *containers.RedisContainer
	backend *Redis
	ctx     context.Context
}

func TestRedisBackendSuite(t *testing.T) {
	suite.Run(t, new(RedisBackendSuite))
}

func (s *RedisBackendSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.ctx = context.Background()
}

func (s *RedisBackendSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.backend = NewRedis(s.redis.Client, time.Minute, WithKeyPrefix("test:"))
}

func (s *RedisBackendSuite) TestRoundTrip() {
	_, ok, err := s.backend.Get(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.backend.Set(s.ctx, []models.ProgramDefinition{*activeProgram("food")}))
	cached, ok, err := s.backend.Get(s.ctx)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Require().Len(cached, 1)
	s.Equal("food", cached[0].AdminName)

	ttl, err := s.redis.Client.TTL(s.ctx, "test:"+activeProgramsKey).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))

	s.Require().NoError(s.backend.Invalidate(s.ctx))
	_, ok, err = s.backend.Get(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
}
