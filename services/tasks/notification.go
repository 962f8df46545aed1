package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"salesnav/models"
)

const (
	TypeNotifyClient = "notify:client"
	TypeNotifySales  = "notify:sales"
)

// NewPaymentNotificationTask wraps a post-payment email. Emails are never
// retried, so a failed send is logged once and dropped.
func NewPaymentNotificationTask(payload models.PaymentNotification) (*asynq.Task, []asynq.Option, error) {
	var typ string
	switch payload.Kind {
	case models.NotifyClient:
		typ = TypeNotifyClient
	case models.NotifySales:
		typ = TypeNotifySales
	default:
		return nil, nil, fmt.Errorf("unknown notification kind %q", payload.Kind)
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(typ, b)
	opts := []asynq.Option{asynq.MaxRetry(0)}

	return task, opts, nil
}

// ParsePaymentNotification decodes a task payload.
func ParsePaymentNotification(t *asynq.Task) (models.PaymentNotification, error) {
	var p models.PaymentNotification
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid notification payload: %w", err)
	}
	return p, nil
}
