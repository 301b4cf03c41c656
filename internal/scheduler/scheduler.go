// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// Parser accepts the same schedules as the scheduler: six fields with
// seconds, or a descriptor such as "@every 60s".
var Parser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Scheduler runs named jobs. Job names are unique.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger

	mu   sync.Mutex
	jobs map[string]cron.EntryID
}

// New creates a new scheduler
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithParser(Parser)),
		log:  log.With().Str("component", "scheduler").Logger(),
		jobs: make(map[string]cron.EntryID),
	}
}

// ValidateSchedule reports whether schedule can be registered
func ValidateSchedule(schedule string) error {
	_, err := Parser.Parse(schedule)
	return err
}

// Start starts the scheduler and logs when each job runs next
func (s *Scheduler) Start() {
	s.cron.Start()

	s.mu.Lock()
	defer s.mu.Unlock()
	for name, id := range s.jobs {
		s.log.Info().
			Str("job", name).
			Time("next_run", s.cron.Entry(id).Next).
			Msg("Job scheduled")
	}
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers job under its name with a cron schedule.
// Schedule examples:
//   - "@every 60s"         - Every 60 seconds
//   - "0 */5 * * * *"      - Every 5 minutes
//   - "0 0 9 * * MON-FRI"  - 9 AM weekdays
func (s *Scheduler) AddJob(schedule string, job Job) error {
	name := job.Name()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	id, err := s.cron.AddFunc(schedule, func() {
		start := time.Now()
		if err := job.Run(); err != nil {
			s.log.Error().Err(err).Str("job", name).Dur("duration", time.Since(start)).Msg("Job failed")
			return
		}
		s.log.Debug().Str("job", name).Dur("duration", time.Since(start)).Msg("Job completed")
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", schedule, name, err)
	}
	s.jobs[name] = id

	s.log.Info().Str("schedule", schedule).Str("job", name).Msg("Job registered")
	return nil
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info().Str("job", job.Name()).Msg("Running job immediately")
	return job.Run()
}

// NextRun returns when the named job runs next. ok is false for an unknown
// job or before Start.
func (s *Scheduler) NextRun(name string) (next time.Time, ok bool) {
	s.mu.Lock()
	id, exists := s.jobs[name]
	s.mu.Unlock()
	if !exists {
		return time.Time{}, false
	}

	next = s.cron.Entry(id).Next
	return next, !next.IsZero()
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
