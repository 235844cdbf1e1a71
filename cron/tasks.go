package cron

import (
	"encoding/json"
	"fmt"
	"time"

	"clinicdesk/services/messaging"

	"github.com/hibiken/asynq"
)

const TypeMessagingDispatch = "messaging:dispatch"

// NewMessagingTask wraps ev in an asynq task. Dispatch recovers its own
// failures, so the task is never retried.
func NewMessagingTask(ev messaging.Event) (*asynq.Task, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("NewMessagingTask: %w", err)
	}
	return asynq.NewTask(TypeMessagingDispatch, payload, asynq.MaxRetry(0)), nil
}

func decodeMessagingTask(task *asynq.Task) (messaging.Event, error) {
	var ev messaging.Event
	if err := json.Unmarshal(task.Payload(), &ev); err != nil {
		return messaging.Event{}, fmt.Errorf("invalid messaging payload: %w", err)
	}
	if err := ev.Validate(); err != nil {
		return messaging.Event{}, err
	}
	return ev, nil
}

// processAtOption returns the option deferring a task until at, or nil when
// at is not in the future.
func processAtOption(at time.Time, now time.Time) []asynq.Option {
	if !at.After(now) {
		return nil
	}
	return []asynq.Option{asynq.ProcessAt(at)}
}
