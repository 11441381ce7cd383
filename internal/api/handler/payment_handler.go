package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cartloom/admin-api/internal/api/metrics"
	"github.com/cartloom/admin-api/internal/core/domain"
	"github.com/cartloom/admin-api/internal/core/ports"
)

// PaymentHandler exposes the payment-provider integration endpoints.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type createProviderOrderRequest struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createProviderOrderResponse struct {
	Success  bool   `json:"success"`
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
	OrderID           string `json:"orderId"`
}

// CreateProviderOrder handles POST /create-razorpay-order. Amounts are in
// minor currency units (paise). A missing receipt gets a generated one.
//
// @Summary      Register an order with the payment provider
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      createProviderOrderRequest  true  "Amount in paise, currency, receipt"
// @Success      200   {object}  createProviderOrderResponse
// @Failure      400   {object}  envelope
// @Router       /create-razorpay-order [post]
func (h *PaymentHandler) CreateProviderOrder(c echo.Context) error {
	var req createProviderOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.Receipt == "" {
		req.Receipt = "rcpt_" + uuid.NewString()
	}

	order, err := h.service.CreateProviderOrder(c.Request().Context(), req.Amount, req.Currency, req.Receipt)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, createProviderOrderResponse{
		Success:  true,
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
	})
}

// VerifyPayment handles POST /verify-payment.
//
// @Summary      Verify a payment-provider signature
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      verifyPaymentRequest  true  "Provider callback fields"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /verify-payment [post]
func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	var req verifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	order, err := h.service.Verify(c.Request().Context(), ports.VerifyPaymentInput{
		ProviderOrderID:   req.RazorpayOrderID,
		ProviderPaymentID: req.RazorpayPaymentID,
		Signature:         req.RazorpaySignature,
		OrderID:           req.OrderID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSignatureMismatch) {
			metrics.PaymentsVerifiedTotal.WithLabelValues("mismatch").Inc()
		}
		return err
	}

	metrics.PaymentsVerifiedTotal.WithLabelValues("verified").Inc()
	return c.JSON(http.StatusOK, ok(order, "Payment verified successfully"))
}
