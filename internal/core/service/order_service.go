package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cartloom/admin-api/internal/core/domain"
	"github.com/cartloom/admin-api/internal/core/ports"
	"github.com/cartloom/admin-api/internal/pkg/pagination"
)

// OrderService implements ports.OrderService. Reads are joined with the
// owning user's summary fields via the user repository.
type OrderService struct {
	orders ports.OrderRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, users ports.UserRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, users: users, logger: logger}
}

func (s *OrderService) Create(ctx context.Context, userID string, in ports.CreateOrderInput) (*domain.Order, error) {
	if in.ShippingInfo == nil || len(in.OrderItems) == 0 || in.TotalAmount == 0 {
		return nil, fmt.Errorf("%w: missing required fields: shippingInfo, orderItems, totalAmount", domain.ErrValidation)
	}

	items := make([]domain.OrderItem, len(in.OrderItems))
	for i, it := range in.OrderItems {
		items[i] = domain.OrderItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Image:    it.Image,
			Price:    it.Price,
			Product:  it.Product,
		}
	}
	// Reject unparseable prices up front so the subtotal stays re-derivable.
	if _, err := domain.ItemsTotal(items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	paymentInfo := domain.PaymentInfo{Status: domain.PaymentStatusPending}
	if in.PaymentInfo != nil {
		paymentInfo = domain.PaymentInfo{ID: in.PaymentInfo.ID, Status: in.PaymentInfo.Status}
		if paymentInfo.Status == "" {
			paymentInfo.Status = domain.PaymentStatusPending
		}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		UserID: userID,
		ShippingInfo: domain.ShippingInfo{
			FullName: in.ShippingInfo.FullName,
			Address:  in.ShippingInfo.Address,
			City:     in.ShippingInfo.City,
			PhoneNo:  in.ShippingInfo.PhoneNo,
			ZipCode:  in.ShippingInfo.ZipCode,
			Country:  in.ShippingInfo.Country,
		},
		OrderItems:     items,
		PaymentMethod:  in.PaymentMethod,
		PaymentInfo:    paymentInfo,
		ItemsPrice:     in.ItemsPrice,
		TaxAmount:      in.TaxAmount,
		ShippingAmount: in.ShippingAmount,
		TotalAmount:    in.TotalAmount,
		OrderStatus:    domain.StatusProcessing,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("order create failed")
		return nil, err
	}

	s.logger.Info().Str("order_id", created.ID).Str("user_id", userID).Msg("order created")
	return s.withOwner(ctx, created), nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, order), nil
}

func (s *OrderService) List(ctx context.Context, page, limit int) (*ports.OrderPage, error) {
	total, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}

	meta, skip := pagination.New(total, page, limit)

	orders, err := s.orders.List(ctx, skip, meta.ItemsPerPage)
	if err != nil {
		return nil, err
	}

	s.attachOwners(ctx, orders)
	return &ports.OrderPage{Orders: orders, Pagination: meta}, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: order status is required", domain.ErrValidation)
	}

	// Transitions are unconstrained by design: the admin panel may move an
	// order between any two statuses. Only Delivered stamps the timestamp.
	var deliveredAt *time.Time
	if status == domain.StatusDelivered {
		now := time.Now().UTC()
		deliveredAt = &now
	}

	order, err := s.orders.UpdateStatus(ctx, id, status, deliveredAt)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", id).Str("status", string(status)).Msg("order status updated")
	return s.withOwner(ctx, order), nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("order_id", id).Msg("order deleted")
	return nil
}

// withOwner joins the owning user's summary onto a single order. A missing
// user is not an error; the order is returned without the join.
func (s *OrderService) withOwner(ctx context.Context, order *domain.Order) *domain.Order {
	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		return order
	}
	order.Owner = &domain.OwnerSummary{ID: user.ID, Name: user.Name, Email: user.Email, Phone: user.Phone}
	return order
}

func (s *OrderService) attachOwners(ctx context.Context, orders []*domain.Order) {
	owners := make(map[string]*domain.OwnerSummary)
	for _, o := range orders {
		owner, seen := owners[o.UserID]
		if !seen {
			if user, err := s.users.FindByID(ctx, o.UserID); err == nil {
				owner = &domain.OwnerSummary{ID: user.ID, Name: user.Name, Email: user.Email, Phone: user.Phone}
			}
			owners[o.UserID] = owner
		}
		o.Owner = owner
	}
}
