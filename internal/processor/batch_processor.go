package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"smartestate/server/config"
	"smartestate/server/internal/models"
	"smartestate/server/internal/queue"
)

// IndicatorStore persists indicator batches.
type IndicatorStore interface {
	SaveIndicators(series models.IndicatorSeries) error
}

// BatchProcessor drains the indicator queue into the record store with
// retry on transient failures.
type BatchProcessor struct {
	store     IndicatorStore
	logger    *logrus.Logger
	config    *config.Config
	queue     *queue.IndicatorQueue
	waitGroup sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewBatchProcessor creates a new batch processor instance.
func NewBatchProcessor(store IndicatorStore, q *queue.IndicatorQueue, cfg *config.Config, logger *logrus.Logger) *BatchProcessor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		store:  store,
		queue:  q,
		config: cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins processing batches from the queue.
func (p *BatchProcessor) Start() {
	for i := 0; i < p.config.IndicatorRefresh.ProcessorCount; i++ {
		p.waitGroup.Add(1)
		go p.processLoop()
	}
}

// Stop gracefully shuts down the processor.
func (p *BatchProcessor) Stop() {
	p.cancel()
	p.waitGroup.Wait()
}

func (p *BatchProcessor) processLoop() {
	defer p.waitGroup.Done()

	p.queue.Subscribe(func(batch models.IndicatorSeries) error {
		return p.ProcessBatch(batch)
	})
}

// ProcessBatch persists a single indicator batch, retrying failed attempts
// up to the configured maximum.
func (p *BatchProcessor) ProcessBatch(batch models.IndicatorSeries) error {
	var err error
	for attempt := 0; attempt <= p.config.IndicatorRefresh.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying indicator batch, attempt %d of %d", attempt, p.config.IndicatorRefresh.MaxRetries)
			time.Sleep(time.Duration(p.config.IndicatorRefresh.RetryDelay) * time.Second)
		}

		err = p.store.SaveIndicators(batch)
		if err == nil {
			p.logger.Infof("Successfully persisted batch of %d indicators", len(batch))
			return nil
		}

		p.logger.Errorf("Indicator batch persistence failed: %v", err)
	}

	return fmt.Errorf("failed to persist batch after %d attempts: %w", p.config.IndicatorRefresh.MaxRetries, err)
}
