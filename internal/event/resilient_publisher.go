package event

import (
	"context"
	"sync"
	"time"

	"github.com/casefall/casefall/internal/logger"
)

// retryEntry tracks an event waiting for another publish attempt
type retryEntry struct {
	event     Event
	attempts  int
	lastError error
}

// ResilientPublisher wraps an event Bus with retry logic and dead-letter
// queuing. Failed publishes are retried with exponential backoff on a
// background worker; events that exhaust their retries are appended to a
// dead-letter file for offline inspection.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a ResilientPublisher and starts its retry
// worker. The dead-letter file is created at deadLetterPath if it does not
// exist.
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p, nil
}

// PublishWithRetry publishes an event, queuing it for background retry on
// failure. The caller is never blocked on retries; delivery after the first
// failed attempt is best effort.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	logger.Warn(LogMsgEventPublishFailed,
		"event_type", evt.Type,
		"error", err)

	entry := retryEntry{event: evt, attempts: 1, lastError: err}
	select {
	case p.retryQueue <- entry:
	default:
		// Queue full, dead-letter immediately rather than block the caller
		logger.Warn(LogMsgRetryQueueFull, "event_type", evt.Type)
		if dlErr := p.deadLetter.Write(evt, entry.attempts, err); dlErr != nil {
			logger.Error(LogMsgDeadLetterWriteFailed, "error", dlErr)
		}
	}
}

// Publish implements Bus. It delegates to PublishWithRetry and always
// reports success to the caller; delivery failures are handled by the retry
// worker.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	p.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drainQueue()
			return
		case entry := <-p.retryQueue:
			p.processRetry(entry)
		}
	}
}

// processRetry waits out the backoff for an entry, then attempts a publish.
// Failed entries are requeued until maxRetries is exhausted.
func (p *ResilientPublisher) processRetry(entry retryEntry) {
	delay := CalculateRetryDelay(p.retryDelay, entry.attempts)

	select {
	case <-time.After(delay):
	case <-p.shutdown:
		// Skip the backoff so shutdown can drain quickly
	}

	err := p.bus.Publish(context.Background(), entry.event)
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded,
			"event_type", entry.event.Type,
			"attempt", entry.attempts+1)
		return
	}

	entry.attempts++
	entry.lastError = err

	if entry.attempts > p.maxRetries {
		logger.Warn(LogMsgEventRetryExhausted,
			"event_type", entry.event.Type,
			"attempts", entry.attempts-1)
		if dlErr := p.deadLetter.Write(entry.event, entry.attempts-1, err); dlErr != nil {
			logger.Error(LogMsgDeadLetterWriteFailed, "error", dlErr)
		}
		return
	}

	logger.Warn(LogMsgEventRetryFailed,
		"event_type", entry.event.Type,
		"attempt", entry.attempts,
		"error", err)

	select {
	case p.retryQueue <- entry:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		if dlErr := p.deadLetter.Write(entry.event, entry.attempts, err); dlErr != nil {
			logger.Error(LogMsgDeadLetterWriteFailed, "error", dlErr)
		}
	}
}

// drainQueue makes a final publish attempt for everything still queued.
// Anything that fails here goes straight to the dead-letter file.
func (p *ResilientPublisher) drainQueue() {
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			drained++
			if err := p.bus.Publish(context.Background(), entry.event); err != nil {
				logger.Warn(LogMsgEventDroppedShutdown, "event_type", entry.event.Type)
				if dlErr := p.deadLetter.Write(entry.event, entry.attempts, err); dlErr != nil {
					logger.Error(LogMsgDeadLetterWriteFailedS, "error", dlErr)
				}
			}
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

// Shutdown stops the retry worker, draining any queued events. It blocks
// until the worker exits or ctx is cancelled.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	close(p.shutdown)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	return p.deadLetter.Close()
}
