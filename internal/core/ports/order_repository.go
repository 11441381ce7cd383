package ports

import (
	"context"
	"time"

	"github.com/cartloom/admin-api/internal/core/domain"
)

// OrderRepository defines persistence for orders. List ordering is stable:
// insertion (creation) order.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns one page of orders in creation order.
	List(ctx context.Context, skip, limit int) ([]*domain.Order, error)
	Count(ctx context.Context) (int64, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	// UpdateStatus sets the order status and, when deliveredAt is non-nil,
	// stamps the delivery time. A nil deliveredAt leaves the stored value
	// untouched. Returns the updated order.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, deliveredAt *time.Time) (*domain.Order, error)
	// MarkPaid records a completed online payment and resets the order to
	// Processing.
	MarkPaid(ctx context.Context, id, paymentID string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
