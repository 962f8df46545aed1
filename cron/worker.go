package cron

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"salesnav/services/notification"
	"salesnav/services/tasks"
)

// NotificationWorker consumes the post-payment email queue.
type NotificationWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewNotificationWorker builds the asynq server. Nothing is consumed until Start.
func NewNotificationWorker(redisOpt asynq.RedisClientOpt, notifier notification.NotificationService, logger *zap.Logger) *NotificationWorker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Notification task failed", zap.String("type", task.Type()), zap.Error(err))
		}),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotifyClient, HandleNotification(notifier, logger))
	mux.HandleFunc(tasks.TypeNotifySales, HandleNotification(notifier, logger))

	return &NotificationWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background.
func (w *NotificationWorker) Start() error {
	w.logger.Info("Starting notification worker")
	if err := w.srv.Start(w.mux); err != nil {
		return fmt.Errorf("failed to start notification worker: %w", err)
	}
	return nil
}

// Shutdown waits for in-flight tasks and stops the worker.
func (w *NotificationWorker) Shutdown() {
	w.srv.Shutdown()
	w.logger.Info("Notification worker stopped")
}

// HandleNotification sends a queued email. Failures are final.
func HandleNotification(notifier notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParsePaymentNotification(task)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		switch task.Type() {
		case tasks.TypeNotifyClient:
			err = notifier.NotifyClient(ctx, p)
		case tasks.TypeNotifySales:
			err = notifier.NotifySales(ctx, p)
		default:
			logger.Warn("Unknown notification task", zap.String("type", task.Type()))
			return nil
		}
		if err != nil {
			return fmt.Errorf("send %s notification: %v: %w", p.Kind, err, asynq.SkipRetry)
		}
		logger.Info("Notification sent", zap.String("kind", p.Kind), zap.String("paymentIntentId", p.PaymentIntentID))
		return nil
	}
}
