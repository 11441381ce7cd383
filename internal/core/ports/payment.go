package ports

import (
	"context"

	"github.com/cartloom/admin-api/internal/core/domain"
)

// ProviderOrder is an order registered with the external payment provider.
// Amount is in minor currency units (paise for INR).
type ProviderOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

// PaymentGateway abstracts the payment provider's REST API.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*ProviderOrder, error)
}

// VerifyPaymentInput carries the provider callback fields to verify.
type VerifyPaymentInput struct {
	ProviderOrderID   string
	ProviderPaymentID string
	Signature         string
	OrderID           string
}

// PaymentService captures provider orders and verifies payment signatures.
type PaymentService interface {
	CreateProviderOrder(ctx context.Context, amount int64, currency, receipt string) (*ProviderOrder, error)
	// Verify checks the provider signature and, on match, marks the local
	// order paid. A mismatch fails with domain.ErrSignatureMismatch.
	Verify(ctx context.Context, in VerifyPaymentInput) (*domain.Order, error)
}
