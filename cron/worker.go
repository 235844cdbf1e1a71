package cron

import (
	"context"
	"fmt"
	"time"

	"clinicdesk/config"
	"clinicdesk/services/messaging"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection for the messaging queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitMessagingWorker runs the messaging worker in the background and
// returns the server so the caller can shut it down.
func InitMessagingWorker(handler messaging.EventHandler, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMessagingDispatch, handleMessagingTask(handler, logger))

	go monitorRedisConnection(logger)

	go func() {
		logger.Info("[MessagingWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("[MessagingWorker] failed to start worker",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("[MessagingWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}

func handleMessagingTask(handler messaging.EventHandler, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ev, err := decodeMessagingTask(task)
		if err != nil {
			logger.Error("[MessagingHandler] dropping task", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		res := handler.HandleEvent(ctx, ev)
		logger.Info("[MessagingHandler] event dispatched",
			zap.String("appointmentId", ev.Record.ID),
			zap.String("kind", string(ev.Kind)),
			zap.String("intent", string(ev.Intent)),
			zap.Bool("adminFallback", res.Admin.Fallback),
			zap.Bool("userSent", res.User != nil && !res.User.Fallback))
		return nil
	}
}

// monitorRedisConnection pings the queue Redis periodically to detect failures at runtime.
func monitorRedisConnection(logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("[MessagingWorker] Redis connection lost", zap.Error(err))
		}
	}
}
