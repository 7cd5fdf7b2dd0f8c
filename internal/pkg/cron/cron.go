package cron

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// JobStatus represents the last known state of a job.
type JobStatus string

const (
	StatusIdle    JobStatus = "idle"
	StatusRunning JobStatus = "running"
	StatusFulfill JobStatus = "fulfill"
	StatusReject  JobStatus = "reject"
)

// Job defines a scheduled background task.
type Job struct {
	Name        string
	Description string
	Interval    time.Duration
	Fn          func(ctx context.Context) error
}

type jobState struct {
	Job
	mu        sync.Mutex
	status    JobStatus
	message   string
	lastRunAt *time.Time
	nextRunAt time.Time
}

// ListItem is the serializable representation of a job.
type ListItem struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      JobStatus  `json:"status"`
	Message     string     `json:"message,omitempty"`
	NextDate    *time.Time `json:"nextDate"`
	LastRunAt   *time.Time `json:"lastRunAt,omitempty"`
}

// Scheduler runs named jobs on fixed intervals.
type Scheduler struct {
	mu     sync.RWMutex
	jobs   map[string]*jobState
	logger *zap.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

func New(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		jobs:   make(map[string]*jobState),
		logger: logger.Named("cron"),
		now:    time.Now,
	}
}

// Register adds a job. Jobs with a non-positive interval are ignored.
// Must be called before Start.
func (s *Scheduler) Register(job Job) {
	if job.Interval <= 0 || job.Fn == nil {
		s.logger.Info("job disabled", zap.String("job", job.Name))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.Name] = &jobState{
		Job:       job,
		status:    StatusIdle,
		nextRunAt: s.now().Add(job.Interval),
	}
}

// Start launches every registered job in its own goroutine. The loops exit
// when ctx is cancelled; Wait blocks until they have.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, js := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, js)
	}
}

// Wait blocks until all job loops started by Start have returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, js *jobState) {
	defer s.wg.Done()
	ticker := time.NewTicker(js.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.execute(ctx, js)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, js *jobState) {
	js.mu.Lock()
	if js.status == StatusRunning {
		js.mu.Unlock()
		return
	}
	js.status = StatusRunning
	js.mu.Unlock()

	started := s.now()
	err := js.Fn(ctx)
	elapsed := s.now().Sub(started)

	js.mu.Lock()
	js.lastRunAt = &started
	js.nextRunAt = s.now().Add(js.Interval)
	if err != nil {
		js.status = StatusReject
		js.message = err.Error()
	} else {
		js.status = StatusFulfill
		js.message = ""
	}
	js.mu.Unlock()

	if err != nil {
		s.logger.Warn("job failed", zap.String("job", js.Name), zap.Duration("elapsed", elapsed), zap.Error(err))
		return
	}
	s.logger.Debug("job finished", zap.String("job", js.Name), zap.Duration("elapsed", elapsed))
}

// RunNow executes a job synchronously, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.RLock()
	js, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job %q not found", name)
	}
	s.execute(ctx, js)

	js.mu.Lock()
	defer js.mu.Unlock()
	if js.status == StatusReject {
		return fmt.Errorf("job %q: %s", name, js.message)
	}
	return nil
}

// List returns a summary of all registered jobs ordered by name.
func (s *Scheduler) List() []ListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ListItem, 0, len(s.jobs))
	for _, js := range s.jobs {
		js.mu.Lock()
		next := js.nextRunAt
		items = append(items, ListItem{
			Name:        js.Name,
			Description: js.Description,
			Status:      js.status,
			Message:     js.message,
			NextDate:    &next,
			LastRunAt:   js.lastRunAt,
		})
		js.mu.Unlock()
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}
