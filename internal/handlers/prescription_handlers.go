package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/internal/services"
)

// PrescriptionHandlers handles HTTP requests for the prescription workflow
type PrescriptionHandlers struct {
	prescriptionService services.PrescriptionServiceInterface
}

// NewPrescriptionHandlers creates a new prescription handlers instance
func NewPrescriptionHandlers(prescriptionService services.PrescriptionServiceInterface) *PrescriptionHandlers {
	return &PrescriptionHandlers{prescriptionService: prescriptionService}
}

type prescriptionItemRequest struct {
	MedicineID   int64  `json:"medicine_id"`
	Quantity     int    `json:"quantity"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
}

type prescriptionRequest struct {
	CustomerID    int64                     `json:"customer_id"`
	DoctorName    string                    `json:"doctor_name"`
	DoctorLicense string                    `json:"doctor_license"`
	IssueDate     string                    `json:"issue_date"`
	ExpiryDate    string                    `json:"expiry_date"`
	Notes         *string                   `json:"notes"`
	Items         []prescriptionItemRequest `json:"items"`
}

func (r *prescriptionRequest) toModel() (*models.Prescription, []*models.PrescriptionItem, error) {
	issueDate, err := common.ParseDate(r.IssueDate, "issue_date")
	if err != nil {
		return nil, nil, err
	}
	var expiry *time.Time
	if r.ExpiryDate != "" {
		parsed, err := common.ParseDate(r.ExpiryDate, "expiry_date")
		if err != nil {
			return nil, nil, err
		}
		expiry = &parsed
	}

	header := &models.Prescription{
		CustomerID:    r.CustomerID,
		DoctorName:    r.DoctorName,
		DoctorLicense: r.DoctorLicense,
		IssueDate:     issueDate,
		ExpiryDate:    expiry,
		Notes:         r.Notes,
	}
	items := make([]*models.PrescriptionItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, &models.PrescriptionItem{
			MedicineID:   item.MedicineID,
			Quantity:     item.Quantity,
			Dosage:       item.Dosage,
			Instructions: item.Instructions,
		})
	}
	return header, items, nil
}

// CreatePrescription handles POST /prescriptions. Each dispensed item
// reserves stock as part of the same transaction.
func (h *PrescriptionHandlers) CreatePrescription(c echo.Context) error {
	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	header, items, err := req.toModel()
	if err != nil {
		return common.SendDomainError(c, err)
	}
	header.Items = items
	if err := h.prescriptionService.Create(c.Request().Context(), header); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, header)
}

// GetPrescription handles GET /prescriptions/:id
func (h *PrescriptionHandlers) GetPrescription(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	prescription, err := h.prescriptionService.Get(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, prescription)
}

// ListPrescriptions handles GET /prescriptions
func (h *PrescriptionHandlers) ListPrescriptions(c echo.Context) error {
	filter := &models.PrescriptionSearchFilter{Query: c.QueryParam("q")}
	if customerStr := c.QueryParam("customer_id"); customerStr != "" {
		customerID, err := common.ParseID(customerStr, "customer_id")
		if err != nil {
			return common.SendDomainError(c, err)
		}
		filter.CustomerID = &customerID
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

	prescriptions, err := h.prescriptionService.Search(c.Request().Context(), filter)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, prescriptions)
}

// UpdatePrescription handles PUT /prescriptions/:id. Stock adjustments
// are computed from the difference between the stored items and the new
// ones, so resubmitting the same items is a no-op on inventory.
func (h *PrescriptionHandlers) UpdatePrescription(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	header, items, err := req.toModel()
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if err := h.prescriptionService.Update(c.Request().Context(), id, header, items); err != nil {
		return common.SendDomainError(c, err)
	}

	updated, err := h.prescriptionService.Get(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeletePrescription handles DELETE /prescriptions/:id. Reserved stock
// for every item is returned to the shelf.
func (h *PrescriptionHandlers) DeletePrescription(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	if err := h.prescriptionService.Delete(c.Request().Context(), id); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
