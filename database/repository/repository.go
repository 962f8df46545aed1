package repository

import (
	checkoutRepo "salesnav/database/repository/checkout"
)

// Re-export the CheckoutRepository interface and constructor.
type CheckoutRepository = checkoutRepo.CheckoutRepository

var (
	NewMongoCheckoutRepo = checkoutRepo.NewMongoCheckoutRepo
	ErrRecordNotFound    = checkoutRepo.ErrRecordNotFound
)
