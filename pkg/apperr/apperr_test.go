package apperr

import (
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AppErrTestSuite struct {
	suite.Suite
}

func (s *AppErrTestSuite) TestKinds() {
	assert.Equal(s.T(), KindValidation, KindOf(Validation("bad quality %d", 150)))
	assert.Equal(s.T(), KindImageGeneration, KindOf(ImageGeneration("render failed")))
	assert.Equal(s.T(), KindInternal, KindOf(errors.New("plain")))
}

func (s *AppErrTestSuite) TestKindSurvivesWrapping() {
	err := errors.Wrap(Storage("write failed"), "saving artifact")
	assert.Equal(s.T(), KindStorage, KindOf(err))
	assert.True(s.T(), Is(err, KindStorage))
}

func (s *AppErrTestSuite) TestRetryable() {
	assert.True(s.T(), Retryable(ImageGeneration("flaky")))
	assert.True(s.T(), Retryable(Timeout("adapter exceeded bound")))
	assert.False(s.T(), Retryable(Validation("empty code")))
	assert.False(s.T(), Retryable(Storage("disk full")))
	assert.False(s.T(), Retryable(RateLimited(time.Second, "slow down")))
}

func (s *AppErrTestSuite) TestHTTPStatus() {
	assert.Equal(s.T(), http.StatusBadRequest, HTTPStatus(Validation("nope")))
	assert.Equal(s.T(), http.StatusNotFound, HTTPStatus(NotFound("no such job")))
	assert.Equal(s.T(), http.StatusGone, HTTPStatus(Expired("lapsed")))
	assert.Equal(s.T(), http.StatusTooManyRequests, HTTPStatus(RateLimited(time.Second, "limit")))
	assert.Equal(s.T(), http.StatusServiceUnavailable, HTTPStatus(Busy("full")))
	assert.Equal(s.T(), http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func (s *AppErrTestSuite) TestRetryAfter() {
	err := RateLimited(30*time.Second, "rate limit exceeded")
	assert.Equal(s.T(), 30*time.Second, err.RetryAfter)
}

func (s *AppErrTestSuite) TestCause() {
	cause := errors.New("disk gone")
	err := Storage("write failed").Wrap(cause)
	assert.ErrorIs(s.T(), err, cause)
	assert.Contains(s.T(), err.Error(), "disk gone")
}

func TestAppErrTestSuite(t *testing.T) {
	suite.Run(t, new(AppErrTestSuite))
}
