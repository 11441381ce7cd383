package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OrderStatus is deliberately an open enum: the admin panel may set any value
// and no transition is rejected. Only the Delivered transition has a side
// effect (stamping DeliveredAt).
type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Payment methods.
const (
	PaymentCOD    = "COD"
	PaymentOnline = "Online"
)

// Payment info statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// ShippingInfo is the destination an order ships to.
type ShippingInfo struct {
	FullName string `json:"fullName" bson:"full_name"`
	Address  string `json:"address" bson:"address"`
	City     string `json:"city" bson:"city"`
	PhoneNo  string `json:"phoneNo" bson:"phone_no"`
	ZipCode  string `json:"zipCode" bson:"zip_code"`
	Country  string `json:"country" bson:"country"`
}

// OrderItem is a single ordered line. Price is a decimal string ("79.99") so
// currency sums never go through floating point.
type OrderItem struct {
	Name     string `json:"name" bson:"name"`
	Quantity int    `json:"quantity" bson:"quantity"`
	Image    string `json:"image,omitempty" bson:"image,omitempty"`
	Price    string `json:"price" bson:"price"`
	Product  string `json:"product" bson:"product"`
}

// PaymentInfo records the external payment transaction attached to an order.
type PaymentInfo struct {
	ID     string `json:"id" bson:"id"`
	Status string `json:"status" bson:"status"`
}

// OwnerSummary is the slice of the owning user joined onto order reads.
type OwnerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Order is persisted with a weak back-reference to its owning user (UserID).
// Owner is populated on reads only and never stored.
type Order struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	Owner          *OwnerSummary `json:"user,omitempty"`
	ShippingInfo   ShippingInfo  `json:"shippingInfo"`
	OrderItems     []OrderItem   `json:"orderItems"`
	PaymentMethod  string        `json:"paymentMethod"`
	PaymentInfo    PaymentInfo   `json:"paymentInfo"`
	ItemsPrice     float64       `json:"itemsPrice"`
	TaxAmount      float64       `json:"taxAmount"`
	ShippingAmount float64       `json:"shippingAmount"`
	TotalAmount    float64       `json:"totalAmount"`
	OrderStatus    OrderStatus   `json:"orderStatus"`
	DeliveredAt    *time.Time    `json:"deliveredAt,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// ItemsTotal recomputes the items subtotal from the line items as a decimal
// string. It is display-only and independent of the stored TotalAmount.
func ItemsTotal(items []OrderItem) (string, error) {
	var cents int64
	for _, it := range items {
		c, err := parseAmount(it.Price)
		if err != nil {
			return "", fmt.Errorf("item %q: %w", it.Name, err)
		}
		cents += c * int64(it.Quantity)
	}
	return formatAmount(cents), nil
}

// parseAmount converts a decimal string with up to two fraction digits into
// minor units (cents).
func parseAmount(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	whole, frac, _ := strings.Cut(trimmed, ".")
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	var f int64
	if frac != "" {
		if len(frac) > 2 {
			return 0, fmt.Errorf("invalid price %q: more than two fraction digits", s)
		}
		f, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || f < 0 {
			return 0, fmt.Errorf("invalid price %q", s)
		}
		if len(frac) == 1 {
			f *= 10
		}
	}
	return w*100 + f, nil
}

func formatAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
