package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Publisher hands a messaging Event to a separately scheduled task.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	// PublishAt defers the event until at.
	PublishAt(ctx context.Context, ev Event, at time.Time) error
}

// EventHandler consumes published events.
type EventHandler interface {
	HandleEvent(ctx context.Context, ev Event) Result
}

// InProcessPublisher runs each event on its own goroutine, detached from the
// publishing request. Deferred events live in memory only.
type InProcessPublisher struct {
	handler EventHandler
	logger  *zap.Logger

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
	closed bool
	wg     sync.WaitGroup
}

func NewInProcessPublisher(handler EventHandler, logger *zap.Logger) *InProcessPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InProcessPublisher{
		handler: handler,
		logger:  logger,
		timers:  make(map[*time.Timer]struct{}),
	}
}

func (p *InProcessPublisher) Publish(ctx context.Context, ev Event) error {
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("Publish: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("Publish: publisher is closed")
	}
	p.run(context.WithoutCancel(ctx), ev)
	return nil
}

func (p *InProcessPublisher) PublishAt(ctx context.Context, ev Event, at time.Time) error {
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("PublishAt: %w", err)
	}
	detached := context.WithoutCancel(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("PublishAt: publisher is closed")
	}
	var timer *time.Timer
	timer = time.AfterFunc(time.Until(at), func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if _, pending := p.timers[timer]; !pending {
			return
		}
		delete(p.timers, timer)
		p.run(detached, ev)
	})
	p.timers[timer] = struct{}{}
	return nil
}

// run must be called with p.mu held.
func (p *InProcessPublisher) run(ctx context.Context, ev Event) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("messaging task panicked",
					zap.Any("panic", r),
					zap.String("kind", string(ev.Kind)),
					zap.String("appointmentId", ev.Record.ID))
			}
		}()
		p.handler.HandleEvent(ctx, ev)
	}()
}

// Wait blocks until every running task has finished.
func (p *InProcessPublisher) Wait() {
	p.wg.Wait()
}

// Close drops deferred events that have not fired and waits for running tasks.
func (p *InProcessPublisher) Close() {
	p.mu.Lock()
	p.closed = true
	for t := range p.timers {
		t.Stop()
		delete(p.timers, t)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
