package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cartloom/admin-api/internal/core/domain"
	"github.com/cartloom/admin-api/internal/core/ports"
)

// PaymentService captures provider orders and verifies provider signatures
// against the shared secret.
type PaymentService struct {
	gateway ports.PaymentGateway
	orders  ports.OrderRepository
	secret  string
	logger  zerolog.Logger
}

func NewPaymentService(gateway ports.PaymentGateway, orders ports.OrderRepository, secret string, logger zerolog.Logger) *PaymentService {
	return &PaymentService{gateway: gateway, orders: orders, secret: secret, logger: logger}
}

func (s *PaymentService) CreateProviderOrder(ctx context.Context, amount int64, currency, receipt string) (*ports.ProviderOrder, error) {
	if amount <= 0 || receipt == "" {
		return nil, fmt.Errorf("%w: amount and receipt are required", domain.ErrValidation)
	}
	if currency == "" {
		currency = "INR"
	}

	order, err := s.gateway.CreateOrder(ctx, amount, currency, receipt)
	if err != nil {
		s.logger.Error().Err(err).Str("receipt", receipt).Msg("provider order creation failed")
		return nil, err
	}

	s.logger.Info().Str("provider_order_id", order.ID).Int64("amount", amount).Msg("provider order created")
	return order, nil
}

// Verify recomputes the HMAC-SHA256 of "<providerOrderId>|<providerPaymentId>"
// and compares it to the provider signature in constant time. On match the
// local order is marked paid online and reset to Processing.
func (s *PaymentService) Verify(ctx context.Context, in ports.VerifyPaymentInput) (*domain.Order, error) {
	if in.ProviderOrderID == "" || in.ProviderPaymentID == "" || in.Signature == "" || in.OrderID == "" {
		return nil, fmt.Errorf("%w: missing required payment verification data", domain.ErrValidation)
	}

	expected := signPayment(s.secret, in.ProviderOrderID, in.ProviderPaymentID)
	if !hmac.Equal([]byte(expected), []byte(in.Signature)) {
		s.logger.Warn().Str("order_id", in.OrderID).Msg("payment signature mismatch")
		return nil, domain.ErrSignatureMismatch
	}

	order, err := s.orders.MarkPaid(ctx, in.OrderID, in.ProviderPaymentID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", order.ID).Str("payment_id", in.ProviderPaymentID).Msg("payment verified")
	return order, nil
}

func signPayment(secret, providerOrderID, providerPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(providerOrderID + "|" + providerPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
