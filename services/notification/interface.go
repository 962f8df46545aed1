package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"salesnav/models"
	"salesnav/services/crm"
	"salesnav/services/tasks"
	"salesnav/utils"
)

// ErrNoContact is returned when a client notification has no CRM contact to address.
var ErrNoContact = errors.New("notification has no contact")

// NotificationService sends the two post-payment emails.
type NotificationService interface {
	NotifyClient(ctx context.Context, n models.PaymentNotification) error
	NotifySales(ctx context.Context, n models.PaymentNotification) error
}

// SalesTeam is the internal recipient of payment alerts.
type SalesTeam struct {
	Email string
	Name  string
}

// CRMNotificationService emails through CRM conversations.
type CRMNotificationService struct {
	crm        crm.ContactMessenger
	locationID string
	sales      SalesTeam
	logger     *zap.Logger
}

func NewCRMNotificationService(client crm.ContactMessenger, locationID string, sales SalesTeam, logger *zap.Logger) (*CRMNotificationService, error) {
	if client == nil || logger == nil {
		return nil, fmt.Errorf("notification service initialization error: crm client or logger is nil")
	}
	return &CRMNotificationService{crm: client, locationID: locationID, sales: sales, logger: logger}, nil
}

// NotifyClient sends the payment confirmation to the client's contact.
func (s *CRMNotificationService) NotifyClient(ctx context.Context, n models.PaymentNotification) error {
	if n.ContactID == "" {
		return ErrNoContact
	}
	html, err := render(clientTmpl, n)
	if err != nil {
		return fmt.Errorf("render client email: %w", err)
	}
	err = s.crm.SendMessage(ctx, models.Message{
		LocationID: s.locationID,
		ContactID:  n.ContactID,
		Type:       models.MessageTypeEmail,
		Subject:    "Payment Confirmed - " + n.PackageName,
		HTML:       html,
	})
	if err != nil {
		return err
	}
	s.logger.Info("Confirmation email sent to client", zap.String("contactId", n.ContactID))
	return nil
}

// NotifySales upserts the sales team as a contact, then alerts it.
func (s *CRMNotificationService) NotifySales(ctx context.Context, n models.PaymentNotification) error {
	salesID, err := s.crm.UpsertContact(ctx, models.ContactInput{
		LocationID: s.locationID,
		Email:      s.sales.Email,
		Name:       s.sales.Name,
	})
	if err != nil {
		return fmt.Errorf("resolve sales contact: %w", err)
	}
	html, err := render(salesTmpl, n)
	if err != nil {
		return fmt.Errorf("render sales email: %w", err)
	}
	err = s.crm.SendMessage(ctx, models.Message{
		LocationID: s.locationID,
		ContactID:  salesID,
		Type:       models.MessageTypeEmail,
		Subject:    fmt.Sprintf("💰 New Payment: %s - %s (%s)", n.Client.Name, n.PackageName, utils.FormatUSD(n.SetupFee)),
		HTML:       html,
	})
	if err != nil {
		return err
	}
	s.logger.Info("Sales team notified", zap.String("salesContactId", salesID))
	return nil
}

// QueuedNotificationService hands the emails to the asynq worker.
type QueuedNotificationService struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewQueuedNotificationService(client *asynq.Client, logger *zap.Logger) *QueuedNotificationService {
	return &QueuedNotificationService{client: client, logger: logger}
}

func (s *QueuedNotificationService) NotifyClient(ctx context.Context, n models.PaymentNotification) error {
	if n.ContactID == "" {
		return ErrNoContact
	}
	n.Kind = models.NotifyClient
	return s.enqueue(ctx, n)
}

func (s *QueuedNotificationService) NotifySales(ctx context.Context, n models.PaymentNotification) error {
	n.Kind = models.NotifySales
	return s.enqueue(ctx, n)
}

func (s *QueuedNotificationService) enqueue(ctx context.Context, n models.PaymentNotification) error {
	task, opts, err := tasks.NewPaymentNotificationTask(n)
	if err != nil {
		return err
	}
	info, err := s.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	s.logger.Info("Notification queued", zap.String("taskId", info.ID), zap.String("type", info.Type))
	return nil
}
