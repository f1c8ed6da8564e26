// Package download manages asynchronous export jobs: admission,
// background execution with retry, artifact retention, and expiry
// reclamation.
package download

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/snipframe-cloud/snipframe/internal/export"
	"github.com/snipframe-cloud/snipframe/internal/metrics"
	"github.com/snipframe-cloud/snipframe/internal/storage"
	"github.com/snipframe-cloud/snipframe/internal/theme"
	"github.com/snipframe-cloud/snipframe/pkg/apperr"
	"github.com/snipframe-cloud/snipframe/pkg/log"
	"github.com/snipframe-cloud/snipframe/pkg/retry"
)

// State is a job lifecycle phase.
type State string

const (
	StateQueued     State = "queued"
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateExpired    State = "expired"
)

// active reports whether the state counts against admission.
func (s State) active() bool {
	return s == StateQueued || s == StateProcessing
}

// Request is one admitted export.
type Request struct {
	Code     string
	Language string
	Theme    theme.Theme
	Options  export.Options
}

// Job is the lifecycle record for one request. Snapshots returned by
// Progress are copies; the background task is the only writer.
type Job struct {
	ID           string        `json:"id"`
	State        State         `json:"state"`
	Progress     int           `json:"progress"`
	Message      string        `json:"message"`
	Error        string        `json:"error,omitempty"`
	Format       export.Format `json:"format"`
	CreatedAt    time.Time     `json:"created_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
	ArtifactSize int64         `json:"artifact_size,omitempty"`
}

// Artifact is the retention record for a completed job's bytes.
type Artifact struct {
	JobID       string
	StorageID   string
	Format      export.Format
	ContentType string
	Filename    string
	Size        int64
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Exporter runs the synchronous pipeline for one attempt.
type Exporter interface {
	Export(code, language string, th theme.Theme, opts export.Options) (*export.Result, error)
}

// Config bounds the manager.
type Config struct {
	MaxConcurrent     int
	ArtifactRetention time.Duration
	JobRetention      time.Duration
	RetryPolicy       retry.Policy
}

// DefaultConfig allows 10 concurrent jobs, keeps artifacts for an hour
// and job records for a day.
func DefaultConfig() Config {
	return Config{
		MaxConcurrent:     10,
		ArtifactRetention: time.Hour,
		JobRetention:      24 * time.Hour,
		RetryPolicy:       retry.DefaultPolicy(),
	}
}

// Manager owns the job and artifact records. The two maps are
// synchronized independently so artifact reads never contend with job
// bookkeeping.
type Manager struct {
	cfg      Config
	exporter Exporter
	store    storage.Storage

	jobs      *lockedJobs
	artifacts *lockedArtifacts
}

// NewManager returns a manager using the given collaborators.
func NewManager(cfg Config, exporter Exporter, store storage.Storage) *Manager {
	return &Manager{
		cfg:       cfg,
		exporter:  exporter,
		store:     store,
		jobs:      newLockedJobs(),
		artifacts: newLockedArtifacts(),
	}
}

// Start validates the request, admits it against the concurrency
// bound, records it Queued and hands execution to a background task.
// It never blocks on pipeline execution.
func (m *Manager) Start(ctx context.Context, req Request) (string, error) {
	if err := req.Options.Validate(); err != nil {
		return "", err
	}
	if req.Code == "" {
		return "", apperr.Validation("snippet code cannot be empty")
	}

	id := uuid.New().String()
	job := Job{
		ID:        id,
		State:     StateQueued,
		Progress:  0,
		Message:   "queued",
		Format:    req.Options.Format,
		CreatedAt: time.Now(),
	}

	active, err := m.jobs.admit(job, m.cfg.MaxConcurrent)
	if err != nil {
		return "", err
	}
	metrics.SetActiveJobs(active)

	bg := context.WithoutCancel(ctx)
	go m.process(bg, id, req)

	log.Debug("export job admitted", "job", id, "format", req.Options.Format)
	return id, nil
}

// process runs one job to a terminal state. It is the sole writer for
// its job record after admission.
func (m *Manager) process(ctx context.Context, id string, req Request) {
	m.setProgress(id, StateProcessing, 10, "starting")

	var result *export.Result
	err := retry.Do(ctx, m.cfg.RetryPolicy, func(attempt int) error {
		message := "rendering"
		if attempt > 1 {
			message = fmt.Sprintf("retrying (attempt %d)", attempt)
		}
		m.setProgress(id, StateProcessing, 20*attempt, message)

		var attemptErr error
		result, attemptErr = m.exporter.Export(req.Code, req.Language, req.Theme, req.Options)
		return attemptErr
	})
	if err != nil {
		m.fail(id, err)
		return
	}

	m.setProgress(id, StateProcessing, 80, "saving")

	stored, err := m.store.Put(result.Bytes, req.Options.Format.Extension())
	if err != nil {
		// a rendered but unsaved result is not a success
		m.fail(id, err)
		return
	}

	now := time.Now()
	m.artifacts.put(Artifact{
		JobID:       id,
		StorageID:   stored.ID,
		Format:      result.Format,
		ContentType: result.Format.ContentType(),
		Filename:    fmt.Sprintf("snippet-%s.%s", id[:8], result.Format.Extension()),
		Size:        stored.Size,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.cfg.ArtifactRetention),
	})

	m.complete(id, stored.Size)
}

// Progress returns a snapshot of the job record.
func (m *Manager) Progress(id string) (Job, error) {
	job, ok := m.jobs.get(id)
	if !ok {
		return Job{}, apperr.NotFound("job not found: %s", id)
	}
	return job, nil
}

// Fetch returns the artifact bytes and metadata for a completed job.
// An artifact past its retention is Expired, distinct from one that
// never existed.
func (m *Manager) Fetch(id string) ([]byte, Artifact, error) {
	artifact, ok := m.artifacts.get(id)
	if !ok {
		return nil, Artifact{}, apperr.NotFound("no artifact for job: %s", id)
	}
	if time.Now().After(artifact.ExpiresAt) {
		return nil, Artifact{}, apperr.Expired("artifact for job %s has expired", id)
	}

	data, err := m.store.Get(artifact.StorageID)
	if err != nil {
		return nil, Artifact{}, err
	}
	return data, artifact, nil
}

// ReclaimExpired deletes lapsed artifacts, marks their jobs Expired
// and purges job records past the retention ceiling regardless of
// status. It returns how many artifacts were reclaimed.
func (m *Manager) ReclaimExpired() int {
	now := time.Now()

	reclaimed := 0
	for _, artifact := range m.artifacts.takeExpired(now) {
		if err := m.store.Delete(artifact.StorageID); err != nil {
			log.Warn("artifact deletion failed during reclamation",
				"job", artifact.JobID, "storage_id", artifact.StorageID, "error", err)
		}
		m.jobs.expire(artifact.JobID)
		reclaimed++
	}

	purged := m.jobs.purgeOlderThan(now.Add(-m.cfg.JobRetention))
	if reclaimed > 0 || purged > 0 {
		log.Info("reclamation sweep finished", "artifacts", reclaimed, "jobs_purged", purged)
	}
	// the reclaimed count is returned to the caller; the sweeper owns
	// that metric, only the purge count is recorded here
	metrics.SweepRemoved("jobs", purged)
	metrics.SetActiveJobs(m.jobs.countActive())

	return reclaimed
}

// Stats is a point-in-time aggregate over jobs and artifacts.
type Stats struct {
	Queued     int   `json:"queued"`
	Processing int   `json:"processing"`
	Completed  int   `json:"completed"`
	Failed     int   `json:"failed"`
	Expired    int   `json:"expired"`
	TotalFiles int   `json:"total_files"`
	TotalSize  int64 `json:"total_size"`
}

// AtCapacity reports whether a new submission would be rejected
// right now.
func (m *Manager) AtCapacity() bool {
	return m.jobs.countActive() >= m.cfg.MaxConcurrent
}

// Stats returns a snapshot aggregate.
func (m *Manager) Stats() Stats {
	stats := m.jobs.stats()
	files, size := m.artifacts.totals()
	stats.TotalFiles = files
	stats.TotalSize = size
	return stats
}

func (m *Manager) setProgress(id string, state State, progress int, message string) {
	m.jobs.update(id, func(job *Job) {
		job.State = state
		job.Progress = progress
		job.Message = message
	})
}

func (m *Manager) complete(id string, size int64) {
	now := time.Now()
	var elapsed time.Duration
	var format export.Format
	m.jobs.update(id, func(job *Job) {
		job.State = StateCompleted
		job.Progress = 100
		job.Message = "done"
		job.CompletedAt = &now
		job.ArtifactSize = size
		elapsed = now.Sub(job.CreatedAt)
		format = job.Format
	})

	metrics.ExportFinished(string(format), "completed", elapsed)
	metrics.SetActiveJobs(m.jobs.countActive())
	log.Info("export job completed", "job", id, "bytes", size)
}

func (m *Manager) fail(id string, err error) {
	now := time.Now()
	var elapsed time.Duration
	var format export.Format
	m.jobs.update(id, func(job *Job) {
		job.State = StateFailed
		job.Message = "failed"
		job.Error = err.Error()
		job.CompletedAt = &now
		elapsed = now.Sub(job.CreatedAt)
		format = job.Format
	})

	metrics.ExportFinished(string(format), "failed", elapsed)
	metrics.SetActiveJobs(m.jobs.countActive())
	log.Error("export job failed", "job", id, "error", err)
}
