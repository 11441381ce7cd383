package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cartloom/admin-api/internal/api/metrics"
	apimiddleware "github.com/cartloom/admin-api/internal/api/middleware"
	"github.com/cartloom/admin-api/internal/core/domain"
	"github.com/cartloom/admin-api/internal/core/ports"
	"github.com/cartloom/admin-api/internal/pkg/pagination"
)

// OrderHandler handles the order management endpoints. All routes run behind
// the Auth middleware.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type listOrdersResponse struct {
	Success    bool            `json:"success"`
	Data       []*domain.Order `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// List handles GET /orders?page&limit.
//
// @Summary      List orders with pagination
// @Tags         orders
// @Produce      json
// @Param        page   query     int  false  "1-based page number"
// @Param        limit  query     int  false  "items per page (default 10, max 100)"
// @Success      200    {object}  listOrdersResponse
// @Failure      401    {object}  envelope
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	if result.Orders == nil {
		result.Orders = []*domain.Order{}
	}
	return c.JSON(http.StatusOK, listOrdersResponse{
		Success:    true,
		Data:       result.Orders,
		Pagination: result.Pagination,
	})
}

// Create handles POST /orders.
//
// @Summary      Create an order for the authenticated user
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Order payload"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	user := apimiddleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	order, err := h.service.Create(c.Request().Context(), user.ID, toCreateOrderInput(req))
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(order.PaymentMethod).Inc()
	return c.JSON(http.StatusCreated, ok(order, "Order created successfully"))
}

// Get handles GET /orders/:id.
//
// @Summary      Get a single order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(order, ""))
}

// UpdateStatus handles PATCH /orders/:id.
//
// @Summary      Update an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Order id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /orders/{id} [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.OrderStatus))
	if err != nil {
		return err
	}

	metrics.OrderStatusUpdatesTotal.WithLabelValues(req.OrderStatus).Inc()
	return c.JSON(http.StatusOK, ok(order, fmt.Sprintf("Order status updated to %s", req.OrderStatus)))
}

// Delete handles DELETE /orders/:id.
//
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Message: "Order deleted successfully"})
}

// MyOrders handles GET /myOrders — the authenticated user's own orders,
// unpaginated.
//
// @Summary      List the authenticated user's orders
// @Tags         orders
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /myOrders [get]
func (h *OrderHandler) MyOrders(c echo.Context) error {
	user := apimiddleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	orders, err := h.service.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return c.JSON(http.StatusOK, ok(orders, ""))
}
