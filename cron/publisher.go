package cron

import (
	"context"
	"fmt"
	"time"

	"clinicdesk/services/messaging"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// enqueuer is the part of asynq.Client the publisher uses.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqPublisher hands messaging events to the Redis-backed worker queue.
type AsynqPublisher struct {
	client enqueuer
	logger *zap.Logger
	now    func() time.Time
}

func NewAsynqPublisher(client *asynq.Client, logger *zap.Logger) *AsynqPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsynqPublisher{client: client, logger: logger, now: time.Now}
}

func (p *AsynqPublisher) Publish(ctx context.Context, ev messaging.Event) error {
	return p.PublishAt(ctx, ev, time.Time{})
}

func (p *AsynqPublisher) PublishAt(ctx context.Context, ev messaging.Event, at time.Time) error {
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("AsynqPublisher: %w", err)
	}
	task, err := NewMessagingTask(ev)
	if err != nil {
		return err
	}
	info, err := p.client.EnqueueContext(ctx, task, processAtOption(at, p.now())...)
	if err != nil {
		return fmt.Errorf("AsynqPublisher: enqueue: %w", err)
	}
	p.logger.Debug("messaging task enqueued",
		zap.String("taskId", info.ID),
		zap.String("kind", string(ev.Kind)),
		zap.String("intent", string(ev.Intent)),
		zap.Time("processAt", info.NextProcessAt))
	return nil
}
