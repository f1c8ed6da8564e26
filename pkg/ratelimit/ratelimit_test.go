package ratelimit

import (
	"testing"
	"time"

	"github.com/snipframe-cloud/snipframe/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RateLimitTestSuite struct {
	suite.Suite
}

func (s *RateLimitTestSuite) limiter(max int, window time.Duration) *Limiter {
	return New(Config{MaxRequests: max, Window: window, RetryAfter: 30 * time.Second})
}

func (s *RateLimitTestSuite) TestAllowsUpToLimit() {
	l := s.limiter(3, time.Minute)

	assert.Nil(s.T(), l.Check("user1"))
	assert.Nil(s.T(), l.Check("user1"))
	assert.Nil(s.T(), l.Check("user1"))

	err := l.Check("user1")
	assert.NotNil(s.T(), err)
	assert.True(s.T(), apperr.Is(err, apperr.KindRateLimit))
}

func (s *RateLimitTestSuite) TestDenialCarriesConfiguredRetryHint() {
	l := s.limiter(1, time.Minute)
	assert.Nil(s.T(), l.Check("user1"))

	err := l.Check("user1")
	var appErr *apperr.Error
	assert.ErrorAs(s.T(), err, &appErr)
	assert.Equal(s.T(), 30*time.Second, appErr.RetryAfter)
}

func (s *RateLimitTestSuite) TestIdentifiersAreIndependent() {
	l := s.limiter(2, time.Minute)

	assert.Nil(s.T(), l.Check("user1"))
	assert.Nil(s.T(), l.Check("user1"))
	assert.Nil(s.T(), l.Check("user2"))
	assert.Nil(s.T(), l.Check("user2"))

	assert.NotNil(s.T(), l.Check("user1"))
	assert.NotNil(s.T(), l.Check("user2"))
}

func (s *RateLimitTestSuite) TestWindowExpiry() {
	l := s.limiter(2, 50*time.Millisecond)

	assert.Nil(s.T(), l.Check("user1"))
	assert.Nil(s.T(), l.Check("user1"))
	assert.NotNil(s.T(), l.Check("user1"))

	time.Sleep(80 * time.Millisecond)

	assert.Nil(s.T(), l.Check("user1"))
}

func (s *RateLimitTestSuite) TestRemaining() {
	l := s.limiter(5, time.Minute)

	assert.Equal(s.T(), 5, l.Remaining("user1"))
	assert.Nil(s.T(), l.Check("user1"))
	assert.Equal(s.T(), 4, l.Remaining("user1"))
	assert.Nil(s.T(), l.Check("user1"))
	assert.Equal(s.T(), 3, l.Remaining("user1"))
}

func (s *RateLimitTestSuite) TestReset() {
	l := s.limiter(1, time.Minute)

	assert.Nil(s.T(), l.Check("user1"))
	assert.NotNil(s.T(), l.Check("user1"))

	l.Reset("user1")
	assert.Nil(s.T(), l.Check("user1"))
}

func (s *RateLimitTestSuite) TestSweepExpired() {
	l := s.limiter(5, 50*time.Millisecond)

	assert.Nil(s.T(), l.Check("user1"))
	assert.Nil(s.T(), l.Check("user2"))
	assert.Nil(s.T(), l.Check("user3"))

	time.Sleep(80 * time.Millisecond)

	assert.Equal(s.T(), 3, l.SweepExpired())
	assert.Equal(s.T(), 0, l.Stats().Identifiers)
}

func (s *RateLimitTestSuite) TestStats() {
	l := s.limiter(10, time.Minute)

	assert.Nil(s.T(), l.Check("user1"))
	assert.Nil(s.T(), l.Check("user1"))
	assert.Nil(s.T(), l.Check("user2"))

	stats := l.Stats()
	assert.Equal(s.T(), 2, stats.Identifiers)
	assert.Equal(s.T(), 3, stats.TotalRequests)
	assert.Equal(s.T(), 10, stats.MaxRequests)
	assert.InDelta(s.T(), 1.5, stats.AvgRequests, 0.001)
}

func (s *RateLimitTestSuite) TestStatsExcludeLapsedRequests() {
	l := s.limiter(10, 50*time.Millisecond)

	assert.Nil(s.T(), l.Check("user1"))
	assert.Nil(s.T(), l.Check("user1"))
	assert.Nil(s.T(), l.Check("user2"))

	time.Sleep(80 * time.Millisecond)
	assert.Nil(s.T(), l.Check("user2"))

	stats := l.Stats()
	assert.Equal(s.T(), 2, stats.Identifiers)
	assert.Equal(s.T(), 1, stats.TotalRequests)
	assert.InDelta(s.T(), 0.5, stats.AvgRequests, 0.001)
}

func TestRateLimitTestSuite(t *testing.T) {
	suite.Run(t, new(RateLimitTestSuite))
}
