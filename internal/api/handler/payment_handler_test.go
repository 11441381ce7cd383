package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/cartloom/admin-api/internal/core/domain"
	"github.com/cartloom/admin-api/internal/core/ports"
)

type stubPaymentService struct {
	createFn func(ctx context.Context, amount int64, currency, receipt string) (*ports.ProviderOrder, error)
	verifyFn func(ctx context.Context, in ports.VerifyPaymentInput) (*domain.Order, error)
}

func (s *stubPaymentService) CreateProviderOrder(ctx context.Context, amount int64, currency, receipt string) (*ports.ProviderOrder, error) {
	return s.createFn(ctx, amount, currency, receipt)
}

func (s *stubPaymentService) Verify(ctx context.Context, in ports.VerifyPaymentInput) (*domain.Order, error) {
	return s.verifyFn(ctx, in)
}

func TestPaymentHandler_CreateProviderOrder(t *testing.T) {
	stub := &stubPaymentService{
		createFn: func(_ context.Context, amount int64, currency, receipt string) (*ports.ProviderOrder, error) {
			if amount != 18098 || receipt != "rcpt_custom" {
				t.Fatalf("unexpected args: %d %s", amount, receipt)
			}
			return &ports.ProviderOrder{ID: "rzp_1", Amount: amount, Currency: "INR", Receipt: receipt}, nil
		},
	}
	h := NewPaymentHandler(stub)

	c, rec := postJSON(t, "/create-razorpay-order", `{"amount":18098,"receipt":"rcpt_custom"}`)
	if err := h.CreateProviderOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["id"] != "rzp_1" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestPaymentHandler_CreateProviderOrder_GeneratesReceipt(t *testing.T) {
	stub := &stubPaymentService{
		createFn: func(_ context.Context, _ int64, _ string, receipt string) (*ports.ProviderOrder, error) {
			if !strings.HasPrefix(receipt, "rcpt_") || len(receipt) <= len("rcpt_") {
				t.Fatalf("expected generated receipt, got %q", receipt)
			}
			return &ports.ProviderOrder{ID: "rzp_1", Receipt: receipt}, nil
		},
	}
	h := NewPaymentHandler(stub)

	c, _ := postJSON(t, "/create-razorpay-order", `{"amount":100}`)
	if err := h.CreateProviderOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestPaymentHandler_CreateProviderOrder_MissingAmount(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentService{
		createFn: func(context.Context, int64, string, string) (*ports.ProviderOrder, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	c, _ := postJSON(t, "/create-razorpay-order", `{}`)
	if err := h.CreateProviderOrder(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPaymentHandler_VerifyPayment(t *testing.T) {
	stub := &stubPaymentService{
		verifyFn: func(_ context.Context, in ports.VerifyPaymentInput) (*domain.Order, error) {
			if in.ProviderOrderID != "rzp_order_1" || in.OrderID != "order-1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Order{ID: in.OrderID, PaymentMethod: domain.PaymentOnline}, nil
		},
	}
	h := NewPaymentHandler(stub)

	body := `{"razorpayOrderId":"rzp_order_1","razorpayPaymentId":"rzp_pay_1","razorpaySignature":"sig","orderId":"order-1"}`
	c, rec := postJSON(t, "/verify-payment", body)
	if err := h.VerifyPayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Payment verified successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestPaymentHandler_VerifyPayment_Mismatch(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentService{
		verifyFn: func(context.Context, ports.VerifyPaymentInput) (*domain.Order, error) {
			return nil, domain.ErrSignatureMismatch
		},
	})

	body := `{"razorpayOrderId":"rzp_order_1","razorpayPaymentId":"rzp_pay_1","razorpaySignature":"bad","orderId":"order-1"}`
	c, _ := postJSON(t, "/verify-payment", body)
	if err := h.VerifyPayment(c); !errors.Is(err, domain.ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch to pass through, got %v", err)
	}
}
