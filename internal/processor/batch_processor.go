package processor

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/FurmanCenter/nyc-hotels/config"
	"github.com/FurmanCenter/nyc-hotels/internal/database"
	"github.com/FurmanCenter/nyc-hotels/internal/models"
	"github.com/FurmanCenter/nyc-hotels/internal/queue"
)

// TxRunner is the slice of *gorm.DB the processor depends on.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// BatchProcessor drains complete reconciliation runs from the queue into the
// sink. Each run replaces the previous canonical set inside one transaction,
// with retry, so readers never see a mix of two runs.
type BatchProcessor struct {
	db        TxRunner
	logger    *logrus.Logger
	config    *config.Config
	queue     *queue.HotelQueue
	waitGroup sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewBatchProcessor creates a new batch processor instance
func NewBatchProcessor(db TxRunner, queue *queue.HotelQueue, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		db:     db,
		queue:  queue,
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins processing batches from the queue
func (p *BatchProcessor) Start() {
	for i := 0; i < p.config.BatchProcessing.ProcessorCount; i++ {
		p.waitGroup.Add(1)
		go p.processLoop()
	}
}

// Stop gracefully shuts down the processor
func (p *BatchProcessor) Stop() {
	p.cancel()
	p.waitGroup.Wait()
}

// processLoop handles the continuous processing of runs
func (p *BatchProcessor) processLoop() {
	defer p.waitGroup.Done()

	p.queue.Subscribe(func(run []*models.CanonicalHotel) error {
		return p.processRun(run)
	})
}

// processRun persists one full run with transaction and retry logic
func (p *BatchProcessor) processRun(run []*models.CanonicalHotel) error {
	var err error
	for attempt := 0; attempt <= p.config.BatchProcessing.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying run persistence, attempt %d of %d", attempt, p.config.BatchProcessing.MaxRetries)
			time.Sleep(time.Duration(p.config.BatchProcessing.RetryDelay) * time.Second)
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.ReplaceAll(tx, run, p.config.BatchProcessing.MaxBatchSize); err != nil {
				return fmt.Errorf("failed to replace canonical set: %w", err)
			}
			return nil
		})

		if err == nil {
			p.logger.Infof("Successfully persisted run of %d canonical hotels", len(run))
			return nil
		}

		p.logger.Errorf("Run persistence failed: %v", err)
	}

	return fmt.Errorf("failed to persist run after %d attempts: %w", p.config.BatchProcessing.MaxRetries, err)
}
