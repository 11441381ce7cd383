package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cartloom/admin-api/internal/core/domain"
)

const ordersCollection = "orders"

// OrderRepository implements ports.OrderRepository on MongoDB. Orders are
// serialized straight from the domain type via its bson tags, except for the
// _id, which travels as a hex string on the domain side.
type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

// mongoOrder overrides the two fields whose storage representation differs
// from the domain one (_id as ObjectID, deliveredAt pointer).
type mongoOrder struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	UserID         string              `bson:"user"`
	ShippingInfo   domain.ShippingInfo `bson:"shipping_info"`
	OrderItems     []domain.OrderItem  `bson:"order_items"`
	PaymentMethod  string              `bson:"payment_method"`
	PaymentInfo    domain.PaymentInfo  `bson:"payment_info"`
	ItemsPrice     float64             `bson:"items_price"`
	TaxAmount      float64             `bson:"tax_amount"`
	ShippingAmount float64             `bson:"shipping_amount"`
	TotalAmount    float64             `bson:"total_amount"`
	OrderStatus    string              `bson:"order_status"`
	DeliveredAt    *time.Time          `bson:"delivered_at,omitempty"`
	CreatedAt      time.Time           `bson:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at"`
}

func toMongoOrder(o *domain.Order) mongoOrder {
	return mongoOrder{
		UserID:         o.UserID,
		ShippingInfo:   o.ShippingInfo,
		OrderItems:     o.OrderItems,
		PaymentMethod:  o.PaymentMethod,
		PaymentInfo:    o.PaymentInfo,
		ItemsPrice:     o.ItemsPrice,
		TaxAmount:      o.TaxAmount,
		ShippingAmount: o.ShippingAmount,
		TotalAmount:    o.TotalAmount,
		OrderStatus:    string(o.OrderStatus),
		DeliveredAt:    o.DeliveredAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (mo *mongoOrder) toDomain() *domain.Order {
	return &domain.Order{
		ID:             mo.ID.Hex(),
		UserID:         mo.UserID,
		ShippingInfo:   mo.ShippingInfo,
		OrderItems:     mo.OrderItems,
		PaymentMethod:  mo.PaymentMethod,
		PaymentInfo:    mo.PaymentInfo,
		ItemsPrice:     mo.ItemsPrice,
		TaxAmount:      mo.TaxAmount,
		ShippingAmount: mo.ShippingAmount,
		TotalAmount:    mo.TotalAmount,
		OrderStatus:    domain.OrderStatus(mo.OrderStatus),
		DeliveredAt:    mo.DeliveredAt,
		CreatedAt:      mo.CreatedAt,
		UpdatedAt:      mo.UpdatedAt,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toMongoOrder(order))
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created := *order
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := orderID(id)
	if err != nil {
		return nil, err
	}

	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return mo.toDomain(), nil
}

// List returns one page of orders in creation order.
func (r *OrderRepository) List(ctx context.Context, skip, limit int) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeOrders(ctx, cursor)
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeOrders(ctx, cursor)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, deliveredAt *time.Time) (*domain.Order, error) {
	set := bson.M{
		"order_status": string(status),
		"updated_at":   time.Now().UTC(),
	}
	// deliveredAt is only written on the Delivered transition; any other
	// status leaves the stored value as is.
	if deliveredAt != nil {
		set["delivered_at"] = *deliveredAt
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

func (r *OrderRepository) MarkPaid(ctx context.Context, id, paymentID string) (*domain.Order, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"payment_method": domain.PaymentOnline,
		"payment_info": bson.M{
			"id":     paymentID,
			"status": domain.PaymentStatusCompleted,
		},
		"order_status": string(domain.StatusProcessing),
		"updated_at":   time.Now().UTC(),
	}})
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := orderID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) findOneAndUpdate(ctx context.Context, id string, update bson.M) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := orderID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mo mongoOrder
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return mo.toDomain(), nil
}

func decodeOrders(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Order, error) {
	var orders []*domain.Order
	for cursor.Next(ctx) {
		var mo mongoOrder
		if err := cursor.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, mo.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// orderID parses a hex id; a malformed id behaves like a missing order.
func orderID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrOrderNotFound
	}
	return oid, nil
}

// EnsureIndexes creates the indexes backing the list and per-user queries.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
