package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/snipframe-cloud/snipframe/internal/download"
	"github.com/snipframe-cloud/snipframe/internal/export"
	"github.com/snipframe-cloud/snipframe/internal/highlight"
	"github.com/snipframe-cloud/snipframe/internal/render"
	"github.com/snipframe-cloud/snipframe/internal/session"
	"github.com/snipframe-cloud/snipframe/internal/storage"
	"github.com/snipframe-cloud/snipframe/internal/theme"
	"github.com/snipframe-cloud/snipframe/pkg/ratelimit"
	"github.com/snipframe-cloud/snipframe/pkg/retry"
)

type RestTestSuite struct {
	suite.Suite
	e *echo.Echo
}

func (s *RestTestSuite) SetupTest() {
	s.e = s.bind(ratelimit.Config{
		MaxRequests: 1000,
		Window:      time.Minute,
		RetryAfter:  30 * time.Second,
	})
}

func (s *RestTestSuite) bind(limits ratelimit.Config) *echo.Echo {
	store, err := storage.NewDisk(s.T().TempDir())
	s.Require().Nil(err)

	exporter := export.New(highlight.New(), render.New(), 16, time.Minute)
	downloads := download.NewManager(download.Config{
		MaxConcurrent:     4,
		ArtifactRetention: time.Hour,
		JobRetention:      24 * time.Hour,
		RetryPolicy:       retry.Policy{Attempts: 2, Delay: time.Millisecond, Multiplier: 2},
	}, exporter, store)

	e := echo.New()
	Bind(e.Group("/v1"), Deps{
		Downloads: downloads,
		Themes:    theme.NewManager(),
		Sessions:  session.NewManager(time.Hour),
		Limiter:   ratelimit.New(limits),
	})
	return e
}

func (s *RestTestSuite) request(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().Nil(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func (s *RestTestSuite) decode(rec *httptest.ResponseRecorder, out interface{}) {
	s.Require().Nil(json.Unmarshal(rec.Body.Bytes(), out))
}

func (s *RestTestSuite) TestExportLifecycle() {
	rec := s.request(s.e, http.MethodPost, "/v1/export", map[string]interface{}{
		"code":     "package main\n\nfunc main() {}\n",
		"language": "go",
		"options":  map[string]interface{}{"format": "png"},
	})
	assert.Equal(s.T(), http.StatusAccepted, rec.Code)

	var started struct {
		JobID string `json:"job_id"`
	}
	s.decode(rec, &started)
	assert.NotEmpty(s.T(), started.JobID)

	assert.Eventually(s.T(), func() bool {
		poll := s.request(s.e, http.MethodGet, "/v1/export/"+started.JobID, nil)
		if poll.Code != http.StatusOK {
			return false
		}
		var job struct {
			State    string `json:"state"`
			Progress int    `json:"progress"`
		}
		s.decode(poll, &job)
		return job.State == "completed" && job.Progress == 100
	}, 2*time.Second, 5*time.Millisecond)

	dl := s.request(s.e, http.MethodGet, "/v1/export/"+started.JobID+"/download", nil)
	assert.Equal(s.T(), http.StatusOK, dl.Code)
	assert.Equal(s.T(), "image/png", dl.Header().Get(echo.HeaderContentType))
	assert.Contains(s.T(), dl.Header().Get(echo.HeaderContentDisposition), "attachment")
	assert.NotZero(s.T(), dl.Body.Len())
}

func (s *RestTestSuite) TestExportRejectsInvalidOptions() {
	rec := s.request(s.e, http.MethodPost, "/v1/export", map[string]interface{}{
		"code": "x = 1",
		"options": map[string]interface{}{
			"format":  "jpeg",
			"quality": 150,
		},
	})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *RestTestSuite) TestExportUnknownJob() {
	rec := s.request(s.e, http.MethodGet, "/v1/export/no-such-job", nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)

	rec = s.request(s.e, http.MethodGet, "/v1/export/no-such-job/download", nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *RestTestSuite) TestExportOptions() {
	rec := s.request(s.e, http.MethodGet, "/v1/export/options", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	var capabilities struct {
		Formats []string `json:"formats"`
		Quality struct {
			Min int `json:"min"`
			Max int `json:"max"`
		} `json:"quality"`
	}
	s.decode(rec, &capabilities)
	assert.Contains(s.T(), capabilities.Formats, "png")
	assert.Contains(s.T(), capabilities.Formats, "svg")
	assert.Equal(s.T(), 100, capabilities.Quality.Max)
}

func (s *RestTestSuite) TestThemeCatalog() {
	rec := s.request(s.e, http.MethodGet, "/v1/themes", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	var all []theme.Theme
	s.decode(rec, &all)
	assert.NotEmpty(s.T(), all)

	rec = s.request(s.e, http.MethodGet, "/v1/themes?type=light", nil)
	var light []theme.Theme
	s.decode(rec, &light)
	assert.Less(s.T(), len(light), len(all))

	rec = s.request(s.e, http.MethodGet, "/v1/themes?type=sepia", nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	rec = s.request(s.e, http.MethodGet, "/v1/themes/monokai", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	rec = s.request(s.e, http.MethodGet, "/v1/themes/no-such-theme", nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *RestTestSuite) TestValidateColorSuggestion() {
	rec := s.request(s.e, http.MethodPost, "/v1/themes/validate-color", map[string]string{
		"color": "1e1e2e",
	})
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	var validation theme.ColorValidation
	s.decode(rec, &validation)
	assert.False(s.T(), validation.Valid)
	assert.Equal(s.T(), "#1e1e2e", validation.Suggestion)
}

func (s *RestTestSuite) TestSessionRoundTrip() {
	rec := s.request(s.e, http.MethodPost, "/v1/sessions", nil)
	assert.Equal(s.T(), http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	s.decode(rec, &created)

	rec = s.request(s.e, http.MethodPut, "/v1/sessions/"+created.ID+"/data/language", map[string]string{
		"value": "go",
	})
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	rec = s.request(s.e, http.MethodGet, "/v1/sessions/"+created.ID+"/data/language", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	var value struct {
		Value string `json:"value"`
	}
	s.decode(rec, &value)
	assert.Equal(s.T(), "go", value.Value)

	rec = s.request(s.e, http.MethodDelete, "/v1/sessions/"+created.ID, nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	rec = s.request(s.e, http.MethodGet, "/v1/sessions/"+created.ID, nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *RestTestSuite) TestLanguages() {
	rec := s.request(s.e, http.MethodGet, "/v1/languages", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	var languages []struct {
		ID string `json:"id"`
	}
	s.decode(rec, &languages)
	assert.NotEmpty(s.T(), languages)
}

func (s *RestTestSuite) TestRateLimitDenial() {
	e := s.bind(ratelimit.Config{
		MaxRequests: 2,
		Window:      time.Minute,
		RetryAfter:  30 * time.Second,
	})

	for i := 0; i < 2; i++ {
		rec := s.request(e, http.MethodGet, "/v1/themes", nil)
		assert.Equal(s.T(), http.StatusOK, rec.Code)
	}

	rec := s.request(e, http.MethodGet, "/v1/themes", nil)
	assert.Equal(s.T(), http.StatusTooManyRequests, rec.Code)
	assert.Equal(s.T(), "30", rec.Header().Get("Retry-After"))
}

func TestRestTestSuite(t *testing.T) {
	suite.Run(t, new(RestTestSuite))
}
