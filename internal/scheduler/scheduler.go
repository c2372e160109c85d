package scheduler

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Job is one reconciliation run.
type Job func() error

// Scheduler re-runs reconciliation on a fixed interval in server mode.
// Jobs run sequentially: a tick that arrives while a run is in flight
// waits for it.
type Scheduler struct {
	job      Job
	interval time.Duration
	logger   *logrus.Logger
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential job execution
}

// NewScheduler creates a new scheduler
func NewScheduler(job Job, interval time.Duration, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		job:      job,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start launches the scheduling loop, beginning with an immediate startup
// run.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.logger.Info("Running startup reconciliation")
		s.RunNow()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.RunNow()
			}
		}
	}()
}

// RunNow executes the job immediately, serialized against scheduled runs.
func (s *Scheduler) RunNow() error {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	start := time.Now()
	err := s.job()
	if err != nil {
		s.logger.WithError(err).Error("Scheduled reconciliation failed")
		return err
	}

	s.logger.WithField("duration", time.Since(start).String()).Info("Scheduled reconciliation finished")
	return nil
}

// Stop halts the scheduling loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
