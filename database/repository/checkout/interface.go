package checkoutRepo

import (
	"context"
	"errors"

	"salesnav/models"
)

// ErrRecordNotFound is returned when no checkout matches the id.
var ErrRecordNotFound = errors.New("checkout record not found")

// CheckoutRepository is the checkout audit log.
type CheckoutRepository interface {
	Create(ctx context.Context, rec *models.CheckoutRecord) error
	GetByID(ctx context.Context, id string) (*models.CheckoutRecord, error)
	List(ctx context.Context, limit int64) ([]models.CheckoutRecord, error)
}
