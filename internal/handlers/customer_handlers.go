package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/internal/repositories"
	"pharmacore/internal/services"
)

// CustomerHandlers handles HTTP requests for customer records
type CustomerHandlers struct {
	customerService services.CustomerServiceInterface
	orderService    services.OrderServiceInterface
	paymentRepo     repositories.PaymentRepository
}

// NewCustomerHandlers creates a new customer handlers instance
func NewCustomerHandlers(customerService services.CustomerServiceInterface, orderService services.OrderServiceInterface, paymentRepo repositories.PaymentRepository) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService, orderService: orderService, paymentRepo: paymentRepo}
}

type customerRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

// CreateCustomer handles POST /customers
func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	customer := &models.Customer{Name: req.Name, Phone: req.Phone}
	if err := h.customerService.Create(c.Request().Context(), customer); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

// GetCustomer handles GET /customers/:id
func (h *CustomerHandlers) GetCustomer(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	customer, err := h.customerService.Get(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles PUT /customers/:id
func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	customer := &models.Customer{ID: id, Name: req.Name, Phone: req.Phone}
	if err := h.customerService.Update(c.Request().Context(), customer); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /customers/:id. Removes the customer and
// every record referencing them.
func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	if err := h.customerService.Delete(c.Request().Context(), id); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCustomers handles GET /customers
func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	limit, offset := parsePagination(c)
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	customers, err := h.customerService.List(c.Request().Context(), c.QueryParam("q"), limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, customers)
}

// ListCustomerOrders handles GET /customers/:id/orders
func (h *CustomerHandlers) ListCustomerOrders(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	limit, offset := parsePagination(c)
	limit, offset, err = common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	orders, err := h.orderService.ListOrdersByCustomer(c.Request().Context(), id, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// ListCustomerPayments handles GET /customers/:id/payments
func (h *CustomerHandlers) ListCustomerPayments(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	limit, offset := parsePagination(c)
	limit, offset, err = common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	payments, err := h.paymentRepo.ListByCustomer(c.Request().Context(), id, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}

type loyaltyAdjustRequest struct {
	Points int `json:"points"`
}

// AdjustLoyaltyPoints handles POST /customers/:id/loyalty
func (h *CustomerHandlers) AdjustLoyaltyPoints(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	var req loyaltyAdjustRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.customerService.AdjustLoyaltyPoints(c.Request().Context(), id, req.Points); err != nil {
		return common.SendDomainError(c, err)
	}
	customer, err := h.customerService.Get(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func parsePagination(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
