package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs each registered job on its own ticker until stopped.
// Jobs fire once at startup and then on every interval tick.
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{Name: name, Interval: interval, Fn: fn})
	slog.Info("cron job registered", "job", name, "interval", interval)
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go func(job Job) {
			defer s.wg.Done()

			ticker := time.NewTicker(job.Interval)
			defer ticker.Stop()

			s.run(job)
			for {
				select {
				case <-s.ctx.Done():
					return
				case <-ticker.C:
					s.run(job)
				}
			}
		}(job)
	}
	slog.Info("cron scheduler started", "jobs", len(s.jobs))
}

// Stop cancels the scheduler context and waits for in-flight runs.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("cron scheduler stopped")
}

// run executes one job invocation. A panicking job must not take the
// scheduler goroutine down with it.
func (s *Scheduler) run(job Job) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("cron job panicked", "job", job.Name, "panic", r)
		}
	}()

	start := time.Now()
	if err := job.Fn(s.ctx); err != nil {
		slog.Error("cron job failed", "job", job.Name, "error", err, "took", time.Since(start))
		return
	}
	slog.Debug("cron job done", "job", job.Name, "took", time.Since(start))
}

// RunOnce runs every job a single time, outside the tickers.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("cron job failed", "job", job.Name, "error", err)
		}
	}
}
