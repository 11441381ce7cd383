package handler

import "github.com/cartloom/admin-api/internal/core/ports"

// Request types for order endpoints. The required-field checks
// (shippingInfo, orderItems, totalAmount) live in the service so they hold
// for every caller; the validator tags only shape the nested payloads.

type shippingInfoRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Address  string `json:"address"  validate:"required"`
	City     string `json:"city"     validate:"required"`
	PhoneNo  string `json:"phoneNo"  validate:"required"`
	ZipCode  string `json:"zipCode"  validate:"required"`
	Country  string `json:"country"  validate:"required"`
}

type orderItemRequest struct {
	Name     string `json:"name"     validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Image    string `json:"image"`
	Price    string `json:"price"    validate:"required"`
	Product  string `json:"product"  validate:"required"`
}

type paymentInfoRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type createOrderRequest struct {
	ShippingInfo   *shippingInfoRequest `json:"shippingInfo"`
	OrderItems     []orderItemRequest   `json:"orderItems" validate:"omitempty,dive"`
	PaymentMethod  string               `json:"paymentMethod" validate:"omitempty,oneof=COD Online"`
	PaymentInfo    *paymentInfoRequest  `json:"paymentInfo"`
	ItemsPrice     float64              `json:"itemsPrice"`
	TaxAmount      float64              `json:"taxAmount"`
	ShippingAmount float64              `json:"shippingAmount"`
	TotalAmount    float64              `json:"totalAmount"`
}

type updateStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

func toCreateOrderInput(req createOrderRequest) ports.CreateOrderInput {
	in := ports.CreateOrderInput{
		PaymentMethod:  req.PaymentMethod,
		ItemsPrice:     req.ItemsPrice,
		TaxAmount:      req.TaxAmount,
		ShippingAmount: req.ShippingAmount,
		TotalAmount:    req.TotalAmount,
	}
	if req.ShippingInfo != nil {
		in.ShippingInfo = &ports.ShippingInfoInput{
			FullName: req.ShippingInfo.FullName,
			Address:  req.ShippingInfo.Address,
			City:     req.ShippingInfo.City,
			PhoneNo:  req.ShippingInfo.PhoneNo,
			ZipCode:  req.ShippingInfo.ZipCode,
			Country:  req.ShippingInfo.Country,
		}
	}
	for _, it := range req.OrderItems {
		in.OrderItems = append(in.OrderItems, ports.OrderItemInput{
			Name:     it.Name,
			Quantity: it.Quantity,
			Image:    it.Image,
			Price:    it.Price,
			Product:  it.Product,
		})
	}
	if req.PaymentInfo != nil {
		in.PaymentInfo = &ports.PaymentInfoInput{ID: req.PaymentInfo.ID, Status: req.PaymentInfo.Status}
	}
	return in
}
