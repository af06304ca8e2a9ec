package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/internal/repositories"
)

// SupplierHandlers handles HTTP requests for supplier records
type SupplierHandlers struct {
	supplierRepo repositories.SupplierRepository
}

// NewSupplierHandlers creates a new supplier handlers instance
func NewSupplierHandlers(supplierRepo repositories.SupplierRepository) *SupplierHandlers {
	return &SupplierHandlers{supplierRepo: supplierRepo}
}

type supplierRequest struct {
	Name        string  `json:"name"`
	ContactInfo *string `json:"contact_info"`
}

// CreateSupplier handles POST /suppliers
func (h *SupplierHandlers) CreateSupplier(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendDomainError(c, err)
	}

	supplier := &models.Supplier{Name: req.Name, ContactInfo: req.ContactInfo}
	if err := h.supplierRepo.Create(c.Request().Context(), supplier); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, supplier)
}

// GetSupplier handles GET /suppliers/:id
func (h *SupplierHandlers) GetSupplier(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	supplier, err := h.supplierRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier handles PUT /suppliers/:id
func (h *SupplierHandlers) UpdateSupplier(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendDomainError(c, err)
	}

	supplier := &models.Supplier{ID: id, Name: req.Name, ContactInfo: req.ContactInfo}
	if err := h.supplierRepo.Update(c.Request().Context(), supplier); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles DELETE /suppliers/:id
func (h *SupplierHandlers) DeleteSupplier(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	if err := h.supplierRepo.Delete(c.Request().Context(), id); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSuppliers handles GET /suppliers
func (h *SupplierHandlers) ListSuppliers(c echo.Context) error {
	limit, offset := parsePagination(c)
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	suppliers, err := h.supplierRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, suppliers)
}
