package download

import (
	"sync"
	"time"

	"github.com/snipframe-cloud/snipframe/pkg/apperr"
)

// lockedJobs is the synchronization boundary around the job map. Only
// copies cross it; callers never hold references into the map.
type lockedJobs struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

func newLockedJobs() *lockedJobs {
	return &lockedJobs{jobs: map[string]*Job{}}
}

// admit counts active jobs and inserts the new record under one lock
// acquisition, so concurrent callers can never both observe room for
// the last slot.
func (s *lockedJobs) admit(job Job, maxConcurrent int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := 0
	for _, j := range s.jobs {
		if j.State.active() {
			active++
		}
	}
	if active >= maxConcurrent {
		return 0, apperr.Busy("export queue is full: %d jobs active", active)
	}

	stored := job
	s.jobs[job.ID] = &stored
	return active + 1, nil
}

func (s *lockedJobs) get(id string) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

func (s *lockedJobs) update(id string, fn func(*Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.jobs[id]; ok {
		fn(job)
	}
}

// expire marks a completed job Expired. Other terminal states are left
// untouched.
func (s *lockedJobs) expire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.jobs[id]; ok && job.State == StateCompleted {
		job.State = StateExpired
		job.Message = "expired"
	}
}

func (s *lockedJobs) purgeOlderThan(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, job := range s.jobs {
		if job.CreatedAt.Before(cutoff) {
			delete(s.jobs, id)
			purged++
		}
	}
	return purged
}

func (s *lockedJobs) countActive() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := 0
	for _, job := range s.jobs {
		if job.State.active() {
			active++
		}
	}
	return active
}

func (s *lockedJobs) stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats Stats
	for _, job := range s.jobs {
		switch job.State {
		case StateQueued:
			stats.Queued++
		case StateProcessing:
			stats.Processing++
		case StateCompleted:
			stats.Completed++
		case StateFailed:
			stats.Failed++
		case StateExpired:
			stats.Expired++
		}
	}
	return stats
}

// lockedArtifacts is the synchronization boundary around the artifact
// map, independent from the job map so artifact reads never contend
// with job bookkeeping.
type lockedArtifacts struct {
	mu        sync.RWMutex
	artifacts map[string]Artifact
}

func newLockedArtifacts() *lockedArtifacts {
	return &lockedArtifacts{artifacts: map[string]Artifact{}}
}

func (s *lockedArtifacts) put(artifact Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[artifact.JobID] = artifact
}

func (s *lockedArtifacts) get(jobID string) (Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifact, ok := s.artifacts[jobID]
	return artifact, ok
}

// takeExpired removes and returns every artifact past its expiry.
func (s *lockedArtifacts) takeExpired(now time.Time) []Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []Artifact
	for jobID, artifact := range s.artifacts {
		if now.After(artifact.ExpiresAt) {
			expired = append(expired, artifact)
			delete(s.artifacts, jobID)
		}
	}
	return expired
}

func (s *lockedArtifacts) totals() (int, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var size int64
	for _, artifact := range s.artifacts {
		size += artifact.Size
	}
	return len(s.artifacts), size
}
