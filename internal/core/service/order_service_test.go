package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cartloom/admin-api/internal/core/domain"
	"github.com/cartloom/admin-api/internal/core/ports"
)

type stubOrderRepo struct {
	orders map[string]*domain.Order
	seq    []string
	nextID int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	if o == nil {
		return nil
	}
	clone := *o
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	copy := cloneOrder(order)
	r.nextID++
	copy.ID = fmt.Sprintf("order-%d", r.nextID)
	r.orders[copy.ID] = cloneOrder(copy)
	r.seq = append(r.seq, copy.ID)
	return copy, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	if o, ok := r.orders[id]; ok {
		return cloneOrder(o), nil
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) List(_ context.Context, skip, limit int) ([]*domain.Order, error) {
	var out []*domain.Order
	for i := skip; i < len(r.seq) && len(out) < limit; i++ {
		out = append(out, cloneOrder(r.orders[r.seq[i]]))
	}
	return out, nil
}

func (r *stubOrderRepo) Count(context.Context) (int64, error) {
	return int64(len(r.seq)), nil
}

func (r *stubOrderRepo) FindByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, id := range r.seq {
		if r.orders[id].UserID == userID {
			out = append(out, cloneOrder(r.orders[id]))
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, deliveredAt *time.Time) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.OrderStatus = status
	if deliveredAt != nil {
		o.DeliveredAt = deliveredAt
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) MarkPaid(_ context.Context, id, paymentID string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.PaymentMethod = domain.PaymentOnline
	o.PaymentInfo = domain.PaymentInfo{ID: paymentID, Status: domain.PaymentStatusCompleted}
	o.OrderStatus = domain.StatusProcessing
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	for i, sid := range r.seq {
		if sid == id {
			r.seq = append(r.seq[:i], r.seq[i+1:]...)
			break
		}
	}
	return nil
}

func validCreateInput() ports.CreateOrderInput {
	return ports.CreateOrderInput{
		ShippingInfo: &ports.ShippingInfoInput{
			FullName: "Alice",
			Address:  "1 Main St",
			City:     "Springfield",
			PhoneNo:  "9876543210",
			ZipCode:  "12345",
			Country:  "US",
		},
		OrderItems: []ports.OrderItemInput{
			{Name: "mug", Quantity: 2, Price: "79.99", Product: "prod-1"},
		},
		PaymentMethod:  domain.PaymentCOD,
		ItemsPrice:     159.98,
		TaxAmount:      16.00,
		ShippingAmount: 5.00,
		TotalAmount:    180.98,
	}
}

func newOrderService(orders *stubOrderRepo, users *stubUserRepo) *OrderService {
	return NewOrderService(orders, users, zerolog.Nop())
}

func TestOrderService_Create_Defaults(t *testing.T) {
	users := newStubUserRepo()
	owner, err := users.Create(context.Background(), &domain.User{Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc := newOrderService(newStubOrderRepo(), users)

	order, err := svc.Create(context.Background(), owner.ID, validCreateInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if order.OrderStatus != domain.StatusProcessing {
		t.Fatalf("expected Processing, got %s", order.OrderStatus)
	}
	if order.PaymentInfo.Status != domain.PaymentStatusPending {
		t.Fatalf("expected pending payment, got %s", order.PaymentInfo.Status)
	}
	if order.DeliveredAt != nil {
		t.Fatalf("new order must not carry a delivery time")
	}
	if order.Owner == nil || order.Owner.Name != "Alice" {
		t.Fatalf("expected owner join, got %+v", order.Owner)
	}
}

func TestOrderService_Create_MissingFields(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubUserRepo())

	cases := []ports.CreateOrderInput{
		{},
		{ShippingInfo: &ports.ShippingInfoInput{FullName: "A"}, TotalAmount: 10},
		{ShippingInfo: &ports.ShippingInfoInput{FullName: "A"}, OrderItems: []ports.OrderItemInput{{Name: "x", Quantity: 1, Price: "1"}}},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), "user-1", in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestOrderService_Create_RejectsBadPrice(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubUserRepo())

	in := validCreateInput()
	in.OrderItems[0].Price = "not-a-number"
	if _, err := svc.Create(context.Background(), "user-1", in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOrderService_List_Pagination(t *testing.T) {
	users := newStubUserRepo()
	owner, _ := users.Create(context.Background(), &domain.User{Name: "Alice", Email: "alice@example.com"})
	orders := newStubOrderRepo()
	svc := newOrderService(orders, users)

	for i := 0; i < 25; i++ {
		if _, err := svc.Create(context.Background(), owner.ID, validCreateInput()); err != nil {
			t.Fatalf("seed order %d: %v", i, err)
		}
	}

	page, err := svc.List(context.Background(), 3, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Orders) != 5 {
		t.Fatalf("expected 5 orders on the last page, got %d", len(page.Orders))
	}
	if page.Pagination.TotalPages != 3 || page.Pagination.TotalItems != 25 {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
	for _, o := range page.Orders {
		if o.Owner == nil || o.Owner.ID != owner.ID {
			t.Fatalf("expected owner join on listed order: %+v", o.Owner)
		}
	}

	// Addressing past the end is fine and comes back empty.
	beyond, err := svc.List(context.Background(), 4, 10)
	if err != nil {
		t.Fatalf("List beyond end returned error: %v", err)
	}
	if len(beyond.Orders) != 0 {
		t.Fatalf("expected empty page, got %d orders", len(beyond.Orders))
	}
}

func TestOrderService_List_MissingOwnerIsNotAnError(t *testing.T) {
	orders := newStubOrderRepo()
	svc := newOrderService(orders, newStubUserRepo())

	if _, err := orders.Create(context.Background(), &domain.Order{UserID: "ghost"}); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	page, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Orders) != 1 || page.Orders[0].Owner != nil {
		t.Fatalf("expected order without owner join, got %+v", page.Orders)
	}
}

func TestOrderService_UpdateStatus_DeliveredStampsTime(t *testing.T) {
	users := newStubUserRepo()
	owner, _ := users.Create(context.Background(), &domain.User{Name: "Alice", Email: "alice@example.com"})
	orders := newStubOrderRepo()
	svc := newOrderService(orders, users)

	created, err := svc.Create(context.Background(), owner.ID, validCreateInput())
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}

	shipped, err := svc.UpdateStatus(context.Background(), created.ID, domain.StatusShipped)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if shipped.DeliveredAt != nil {
		t.Fatalf("Shipped must not stamp a delivery time")
	}

	delivered, err := svc.UpdateStatus(context.Background(), created.ID, domain.StatusDelivered)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if delivered.DeliveredAt == nil {
		t.Fatalf("Delivered must stamp a delivery time")
	}

	// Moving away from Delivered keeps the existing stamp.
	back, err := svc.UpdateStatus(context.Background(), created.ID, domain.StatusProcessing)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if back.DeliveredAt == nil {
		t.Fatalf("existing delivery time must survive later transitions")
	}
}

func TestOrderService_UpdateStatus_EmptyStatus(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubUserRepo())

	if _, err := svc.UpdateStatus(context.Background(), "order-1", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOrderService_GetAndDelete_NotFound(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubUserRepo())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_ListByUser(t *testing.T) {
	users := newStubUserRepo()
	alice, _ := users.Create(context.Background(), &domain.User{Name: "Alice", Email: "alice@example.com"})
	bob, _ := users.Create(context.Background(), &domain.User{Name: "Bob", Email: "bob@example.com"})
	orders := newStubOrderRepo()
	svc := newOrderService(orders, users)

	if _, err := svc.Create(context.Background(), alice.ID, validCreateInput()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Create(context.Background(), bob.ID, validCreateInput()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mine, err := svc.ListByUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != alice.ID {
		t.Fatalf("unexpected orders: %+v", mine)
	}
}
