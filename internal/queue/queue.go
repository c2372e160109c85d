package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/FurmanCenter/nyc-hotels/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// HotelQueue is an in-memory queue of complete reconciliation run outputs
// on their way to the persistence sink.
type HotelQueue struct {
	items    chan []*models.CanonicalHotel
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.CanonicalHotel) error
}

// NewHotelQueue creates a new queue with the specified buffer size.
func NewHotelQueue(bufferSize int, logger *logrus.Logger) *HotelQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &HotelQueue{
		items:    make(chan []*models.CanonicalHotel, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func([]*models.CanonicalHotel) error, 0),
	}
}

// Push adds one run's canonical records to the queue
func (q *HotelQueue) Push(hotels []*models.CanonicalHotel) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	// Non-blocking send to prevent deadlocks
	select {
	case q.items <- hotels:
		q.logger.WithField("run_size", len(hotels)).Debug("Pushed run to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each run
func (q *HotelQueue) Subscribe(handler func([]*models.CanonicalHotel) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue
func (q *HotelQueue) Start() {
	go q.process()
}

// process handles the queue processing loop
func (q *HotelQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case run := <-q.items:
			q.dispatch(run)
		}
	}
}

// dispatch sends the run to all subscribed handlers
func (q *HotelQueue) dispatch(run []*models.CanonicalHotel) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(run); err != nil {
			q.logger.WithError(err).Error("Handler failed to process run")
		}
	}
}

// Close stops the queue and prevents new items from being added
func (q *HotelQueue) Close() error {
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

// Len returns the current number of pending runs in the queue
func (q *HotelQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *HotelQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
