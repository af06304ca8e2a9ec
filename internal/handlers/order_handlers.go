package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pharmacore/internal/common"
	"pharmacore/internal/services"
)

// OrderHandlers handles HTTP requests for the order workflow
type OrderHandlers struct {
	orderService services.OrderServiceInterface
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

type orderLineRequest struct {
	MedicineID int64 `json:"medicine_id"`
	Quantity   int   `json:"quantity"`
}

type createOrderRequest struct {
	CustomerID    int64              `json:"customer_id"`
	OrderType     string             `json:"order_type"`
	PaymentMethod string             `json:"payment_method"`
	Items         []orderLineRequest `json:"items"`
}

// CreateOrder handles POST /orders. The whole order is placed in one
// request: every line is priced and checked against current stock, then
// the order commits atomically.
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	employeeID, ok := common.GetEmployeeIDFromContext(c.Request().Context())
	if !ok {
		return common.SendClientError(c, "Missing authenticated employee")
	}

	ctx := c.Request().Context()
	draft, err := h.orderService.NewDraft(req.OrderType)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	draft.PaymentMethod = req.PaymentMethod
	for _, line := range req.Items {
		if err := h.orderService.AddLine(ctx, draft, line.MedicineID, line.Quantity); err != nil {
			return common.SendDomainError(c, err)
		}
	}

	order, err := h.orderService.Commit(ctx, draft, req.CustomerID, employeeID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /orders
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	limit, offset := parsePagination(c)
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	orders, err := h.orderService.ListOrders(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// DeleteOrder handles DELETE /orders/:id. Deleting an order removes its
// lines but does not return stock to the shelf.
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	if err := h.orderService.DeleteOrder(c.Request().Context(), id); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
