package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salesnav/models"
	"salesnav/services/tasks"
)

type recordingNotifier struct {
	client, sales []models.PaymentNotification
	err           error
}

func (r *recordingNotifier) NotifyClient(_ context.Context, n models.PaymentNotification) error {
	r.client = append(r.client, n)
	return r.err
}

func (r *recordingNotifier) NotifySales(_ context.Context, n models.PaymentNotification) error {
	r.sales = append(r.sales, n)
	return r.err
}

func TestHandleNotification_Dispatch(t *testing.T) {
	n := &recordingNotifier{}
	h := HandleNotification(n, zap.NewNop())

	task, _, err := tasks.NewPaymentNotificationTask(models.PaymentNotification{Kind: models.NotifySales, PaymentIntentID: "pi_1"})
	require.NoError(t, err)
	require.NoError(t, h.ProcessTask(context.Background(), task))

	task, _, err = tasks.NewPaymentNotificationTask(models.PaymentNotification{Kind: models.NotifyClient, ContactID: "c1"})
	require.NoError(t, err)
	require.NoError(t, h.ProcessTask(context.Background(), task))

	require.Len(t, n.sales, 1)
	assert.Equal(t, "pi_1", n.sales[0].PaymentIntentID)
	require.Len(t, n.client, 1)
	assert.Equal(t, "c1", n.client[0].ContactID)
}

func TestHandleNotification_FailuresSkipRetry(t *testing.T) {
	n := &recordingNotifier{err: errors.New("crm down")}
	h := HandleNotification(n, zap.NewNop())

	task, _, err := tasks.NewPaymentNotificationTask(models.PaymentNotification{Kind: models.NotifySales})
	require.NoError(t, err)
	err = h.ProcessTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Contains(t, err.Error(), "crm down")

	err = h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeNotifyClient, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleNotification_UnknownTypeIgnored(t *testing.T) {
	n := &recordingNotifier{}
	b, _ := json.Marshal(models.PaymentNotification{})
	err := HandleNotification(n, zap.NewNop()).ProcessTask(context.Background(), asynq.NewTask("notify:other", b))
	assert.NoError(t, err)
	assert.Empty(t, n.client)
	assert.Empty(t, n.sales)
}
