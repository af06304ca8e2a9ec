package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/internal/services"
)

// MedicineHandlers handles HTTP requests for the medicine catalog
type MedicineHandlers struct {
	medicineService services.MedicineServiceInterface
}

// NewMedicineHandlers creates a new medicine handlers instance
func NewMedicineHandlers(medicineService services.MedicineServiceInterface) *MedicineHandlers {
	return &MedicineHandlers{medicineService: medicineService}
}

type medicineRequest struct {
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
	WholesalePrice float64 `json:"wholesale_price"`
	ExpiryDate     string  `json:"expiry_date"`
	SupplierID     *int64  `json:"supplier_id"`
}

func (r *medicineRequest) toModel() (*models.Medicine, error) {
	expiry, err := common.ParseDate(r.ExpiryDate, "expiry_date")
	if err != nil {
		return nil, err
	}
	return &models.Medicine{
		Name:           r.Name,
		Quantity:       r.Quantity,
		Price:          r.Price,
		WholesalePrice: r.WholesalePrice,
		ExpiryDate:     expiry,
		SupplierID:     r.SupplierID,
	}, nil
}

// CreateMedicine handles POST /medicines
func (h *MedicineHandlers) CreateMedicine(c echo.Context) error {
	var req medicineRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	medicine, err := req.toModel()
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if err := h.medicineService.Create(c.Request().Context(), medicine); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, medicine)
}

// GetMedicine handles GET /medicines/:id
func (h *MedicineHandlers) GetMedicine(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	medicine, err := h.medicineService.Get(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, medicine)
}

// UpdateMedicine handles PUT /medicines/:id
func (h *MedicineHandlers) UpdateMedicine(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	var req medicineRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	medicine, err := req.toModel()
	if err != nil {
		return common.SendDomainError(c, err)
	}
	medicine.ID = id
	if err := h.medicineService.Update(c.Request().Context(), medicine); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, medicine)
}

// DeleteMedicine handles DELETE /medicines/:id
func (h *MedicineHandlers) DeleteMedicine(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	if err := h.medicineService.Delete(c.Request().Context(), id); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMedicines handles GET /medicines
func (h *MedicineHandlers) ListMedicines(c echo.Context) error {
	filter := &models.MedicineSearchFilter{
		Query:     c.QueryParam("q"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	medicines, err := h.medicineService.Search(c.Request().Context(), filter)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, medicines)
}

// LowStockMedicines handles GET /medicines/low-stock
func (h *MedicineHandlers) LowStockMedicines(c echo.Context) error {
	threshold := 10
	if thresholdStr := c.QueryParam("threshold"); thresholdStr != "" {
		if parsed, err := strconv.Atoi(thresholdStr); err == nil {
			threshold = parsed
		}
	}

	medicines, err := h.medicineService.LowStock(c.Request().Context(), threshold)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, medicines)
}
