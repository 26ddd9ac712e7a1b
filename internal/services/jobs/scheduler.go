package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/admin/tg-bots/study-bot/internal/ports/jobs"
	"github.com/admin/tg-bots/study-bot/internal/ports/service"
)

// Scheduler управляет запуском периодических джоб
type Scheduler struct {
	jobs           []jobs.Job
	alerterService service.IAlerterService
	log            *slog.Logger
}

// NewScheduler создаёт новый планировщик джоб
func NewScheduler(log *slog.Logger, alerterService service.IAlerterService) *Scheduler {
	return &Scheduler{
		jobs:           make([]jobs.Job, 0),
		alerterService: alerterService,
		log:            log,
	}
}

// Register регистрирует джобу в планировщике
func (s *Scheduler) Register(job jobs.Job) {
	s.jobs = append(s.jobs, job)
	s.log.Debug("job registered", "job_name", job.Name(), "total_jobs", len(s.jobs))
}

// Start запускает планировщик и все зарегистрированные джобы
func (s *Scheduler) Start(ctx context.Context) error {
	if len(s.jobs) == 0 {
		s.log.Info("no jobs registered, scheduler not started")
		return nil
	}

	s.log.Info("starting job scheduler", "jobs_count", len(s.jobs))

	for _, job := range s.jobs {
		job := job
		go func() {
			s.runJob(ctx, job)
		}()
	}

	return nil
}

// runJob запускает отдельную джобу в цикле
func (s *Scheduler) runJob(ctx context.Context, job jobs.Job) {
	jobName := job.Name()

	for {
		now := time.Now()
		duration := job.NextRun(now).Sub(now)

		select {
		case <-ctx.Done():
			s.log.Info("job stopped by context", "job_name", jobName)
			return
		case <-time.After(duration):
			attemptErrors := s.executeJobWithRetry(ctx, job, jobName)
			if len(attemptErrors) > 0 {
				s.log.Error("job failed after all retries",
					"job_name", jobName,
					"attempts", len(attemptErrors),
					"last_error", attemptErrors[len(attemptErrors)-1],
				)
				s.sendAlert(ctx, jobName, attemptErrors)
			} else {
				s.log.Info("job executed successfully", "job_name", jobName)
			}
		}
	}
}

// executeJobWithRetry выполняет джобу с retry при ошибках | now + 1m + 10m + 30m
// Возвращает ошибки всех попыток; пустой слайс означает успех
func (s *Scheduler) executeJobWithRetry(ctx context.Context, job jobs.Job, jobName string) []error {
	retries := []time.Duration{
		1 * time.Minute,
		10 * time.Minute,
		30 * time.Minute,
	}

	var attemptErrors []error

	err := job.Run(ctx)
	if err == nil {
		return nil
	}
	attemptErrors = append(attemptErrors, err)

	for attempt, delay := range retries {
		s.log.Warn("job execution failed, will retry",
			"job_name", jobName,
			"attempt", attempt+1,
			"retry_in", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return attemptErrors
		case <-time.After(delay):
		}

		err = job.Run(ctx)
		if err == nil {
			return nil
		}
		attemptErrors = append(attemptErrors, err)
	}

	return attemptErrors
}

// sendAlert отправляет алерт о проваленной джобе
func (s *Scheduler) sendAlert(ctx context.Context, jobName string, attemptErrors []error) {
	if s.alerterService == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔥 job %s failed after %d attempts\n", jobName, len(attemptErrors))
	for i, err := range attemptErrors {
		fmt.Fprintf(&sb, "attempt %d: %v\n", i+1, err)
	}

	if err := s.alerterService.SendAlert(ctx, sb.String()); err != nil {
		s.log.Warn("failed to send job alert",
			"error", err,
			"job_name", jobName,
		)
	}
}
