package crm

import (
	"context"

	"salesnav/models"
)

// ContactMessenger upserts contacts and messages them.
type ContactMessenger interface {
	UpsertContact(ctx context.Context, in models.ContactInput) (string, error)
	SendMessage(ctx context.Context, msg models.Message) error
}

// PipelineClient records sales in the CRM pipeline and billing.
type PipelineClient interface {
	CreateOpportunity(ctx context.Context, o models.Opportunity) (string, error)
	CreateInvoiceSchedule(ctx context.Context, s models.InvoiceSchedule) (string, error)
}

// Client is the full CRM surface used by checkout.
type Client interface {
	ContactMessenger
	PipelineClient
}
