package env

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/snipframe-cloud/snipframe/pkg/log"
)

var variables = new(Environment)

// Process the environment variables set for snipframe.
func Process() error {
	if err := envconfig.Process("snipframe", variables); err != nil {
		return errors.Wrap(err, "failed to process environment variables")
	}

	// set the log level
	if err := log.SetLevelFromString(variables.LogLevel); err != nil {
		return errors.Wrap(err, "failed to set log level")
	}

	return nil
}

// Variables returns the processed environment variables.
func Variables() Environment {
	return *variables
}

// Environment defines the environment variables used
// by snipframe.
type Environment struct {
	LogLevel string `default:"info"`
	Port     int    `default:"8080"`

	// artifact storage
	TempDir       string        `default:"/tmp/snipframe"`
	ArtifactTTL   time.Duration `default:"1h"`
	JobRetention  time.Duration `default:"24h"`
	SweepSchedule string        `default:"*/30 * * * *"`

	// export jobs
	MaxConcurrentExports int           `default:"10"`
	ExportAttempts       int           `default:"3"`
	ExportBackoff        time.Duration `default:"1s"`

	// rate limiting
	RateLimitRequests int           `default:"100"`
	RateLimitWindow   time.Duration `default:"1m"`
	RateLimitRetry    time.Duration `default:"30s"`

	// sessions
	SessionTTL time.Duration `default:"1h"`

	// render cache
	RenderCacheSize int           `default:"256"`
	RenderCacheTTL  time.Duration `default:"10m"`

	// optional directory of extra theme YAML files
	ThemeDir string `default:""`
}
