package ports

import (
	"context"

	"github.com/cartloom/admin-api/internal/core/domain"
	"github.com/cartloom/admin-api/internal/pkg/pagination"
)

// ShippingInfoInput holds the shipping destination of a new order.
type ShippingInfoInput struct {
	FullName string
	Address  string
	City     string
	PhoneNo  string
	ZipCode  string
	Country  string
}

// OrderItemInput holds one ordered line. Price is a decimal string.
type OrderItemInput struct {
	Name     string
	Quantity int
	Image    string
	Price    string
	Product  string
}

// PaymentInfoInput optionally overrides the initial payment state.
type PaymentInfoInput struct {
	ID     string
	Status string
}

// CreateOrderInput carries everything needed to create an order. Monetary
// totals are caller-supplied; the items subtotal stays re-derivable from the
// line items for display.
type CreateOrderInput struct {
	ShippingInfo   *ShippingInfoInput
	OrderItems     []OrderItemInput
	PaymentMethod  string
	PaymentInfo    *PaymentInfoInput
	ItemsPrice     float64
	TaxAmount      float64
	ShippingAmount float64
	TotalAmount    float64
}

// OrderPage is one page of orders plus pagination metadata.
type OrderPage struct {
	Orders     []*domain.Order
	Pagination pagination.Meta
}

// OrderService defines the order lifecycle use cases. Reads return orders
// joined with the owning user's name/email/phone.
type OrderService interface {
	Create(ctx context.Context, userID string, in CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, page, limit int) (*OrderPage, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
