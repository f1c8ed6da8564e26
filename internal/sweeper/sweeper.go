// Package sweeper runs the periodic expiry sweeps over the
// application's TTL-bound stores.
package sweeper

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron"

	"github.com/snipframe-cloud/snipframe/internal/metrics"
	"github.com/snipframe-cloud/snipframe/pkg/log"
)

// Task is one named sweep. Run returns how many entries it removed.
type Task struct {
	Name string
	Run  func() int
}

// Sweeper fires all registered tasks on a cron schedule.
type Sweeper struct {
	schedule cron.Schedule
	tasks    []Task
}

// New parses a five-field cron expression and returns a sweeper over
// the given tasks.
func New(expression string, tasks ...Task) (*Sweeper, error) {
	parser := cron.NewParser(
		cron.Minute |
			cron.Hour |
			cron.Dom |
			cron.Month |
			cron.Dow,
	)

	schedule, err := parser.Parse(expression)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing sweep schedule %q", expression)
	}

	return &Sweeper{schedule: schedule, tasks: tasks}, nil
}

// Start blocks, firing the tasks at each scheduled time until ctx is
// cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	log.Info("sweeper started", "tasks", len(s.tasks))

	for {
		now := time.Now()
		timer := time.NewTimer(s.schedule.Next(now).Sub(now))

		select {
		case <-timer.C:
			s.RunAll()
		case <-ctx.Done():
			timer.Stop()
			return nil
		}
	}
}

// RunAll fires every task once. A panic in one task is contained so
// the remaining sweeps still run.
func (s *Sweeper) RunAll() {
	for _, task := range s.tasks {
		s.run(task)
	}
}

func (s *Sweeper) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("sweep task panicked", "task", task.Name, "panic", r)
		}
	}()

	removed := task.Run()
	metrics.SweepRemoved(task.Name, removed)
	if removed > 0 {
		log.Info("sweep removed entries", "task", task.Name, "count", removed)
	} else {
		log.Debug("sweep found nothing to remove", "task", task.Name)
	}
}
