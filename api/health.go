package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/internal/download"
)

var startedAt = time.Now()

// Status enumerates the health statuses of snipframe.
type Status string

const (
	// Healthy implies snipframe is having no major issues.
	Healthy Status = "healthy"
	// Degraded implies the export queue is saturated and new
	// submissions are likely to be rejected.
	Degraded Status = "degraded"
)

// HealthResponse defines the data the Health REST endpoint returns.
type HealthResponse struct {
	Status     Status        `json:"status"`
	Uptime     time.Duration `json:"uptime"`
	ActiveJobs int           `json:"active_jobs"`
}

// Health reports liveness, uptime and the export queue load.
func Health(downloads *download.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats := downloads.Stats()
		active := stats.Queued + stats.Processing

		status := Healthy
		if downloads.AtCapacity() {
			status = Degraded
		}

		return c.JSON(
			http.StatusOK,
			HealthResponse{
				Status:     status,
				Uptime:     time.Since(startedAt),
				ActiveJobs: active,
			},
		)
	}
}
