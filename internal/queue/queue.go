package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"smartestate/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// IndicatorQueue is an in-memory queue for batches of fetched economic
// indicators awaiting persistence.
type IndicatorQueue struct {
	items    chan models.IndicatorSeries
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func(models.IndicatorSeries) error
}

// NewIndicatorQueue creates a queue with the specified buffer size.
func NewIndicatorQueue(bufferSize int, logger *logrus.Logger) *IndicatorQueue {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &IndicatorQueue{
		items:    make(chan models.IndicatorSeries, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func(models.IndicatorSeries) error, 0),
	}
}

// Push adds a batch to the queue. The send is non-blocking; a full queue
// returns ErrQueueFull instead of stalling the producer.
func (q *IndicatorQueue) Push(batch models.IndicatorSeries) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	select {
	case q.items <- batch:
		q.logger.WithField("batch_size", len(batch)).Debug("Pushed indicator batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler that will be called for each batch.
func (q *IndicatorQueue) Subscribe(handler func(models.IndicatorSeries) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue.
func (q *IndicatorQueue) Start() {
	go q.process()
}

func (q *IndicatorQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case batch := <-q.items:
			q.processBatch(batch)
		}
	}
}

func (q *IndicatorQueue) processBatch(batch models.IndicatorSeries) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process indicator batch")
		}
	}
}

// Close stops the queue and prevents new items from being added.
func (q *IndicatorQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the current number of batches in the queue.
func (q *IndicatorQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed.
func (q *IndicatorQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
