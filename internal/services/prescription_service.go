package services

import (
	"context"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/internal/repositories"
	"pharmacore/pkg/database"
)

// PrescriptionServiceInterface defines the prescription workflow operations
type PrescriptionServiceInterface interface {
	Create(ctx context.Context, prescription *models.Prescription) error
	Get(ctx context.Context, id int64) (*models.Prescription, error)
	Search(ctx context.Context, filter *models.PrescriptionSearchFilter) ([]*models.Prescription, error)
	Update(ctx context.Context, id int64, header *models.Prescription, items []*models.PrescriptionItem) error
	Delete(ctx context.Context, id int64) error
}

type prescriptionService struct {
	db            TxRunner
	prescriptions repositories.PrescriptionRepository
	items         repositories.PrescriptionItemRepository
	medicines     repositories.MedicineRepository
}

// NewPrescriptionService creates a new prescription service instance
func NewPrescriptionService(
	db TxRunner,
	prescriptions repositories.PrescriptionRepository,
	items repositories.PrescriptionItemRepository,
	medicines repositories.MedicineRepository,
) PrescriptionServiceInterface {
	return &prescriptionService{
		db:            db,
		prescriptions: prescriptions,
		items:         items,
		medicines:     medicines,
	}
}

func validatePrescriptionHeader(p *models.Prescription) error {
	if p.CustomerID <= 0 {
		return common.NewValidationError("customer_id", "customer_id is required")
	}
	if err := common.ValidateRequiredString(p.DoctorName, "doctor_name"); err != nil {
		return err
	}
	if p.IssueDate.IsZero() {
		return common.NewValidationError("issue_date", "issue_date is required")
	}
	if p.ExpiryDate != nil && !p.ExpiryDate.After(p.IssueDate) {
		return common.NewValidationError("expiry_date", "expiry_date must be after issue_date")
	}
	return nil
}

func validatePrescriptionItems(items []*models.PrescriptionItem) error {
	for _, item := range items {
		if item.MedicineID <= 0 {
			return common.NewValidationError("medicine_id", "medicine_id is required")
		}
		if err := common.ValidatePositiveInteger(item.Quantity, "quantity", maxStockAdjustment); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts the header first for its generated id, then reserves
// stock and inserts each item. Any failing item aborts the transaction,
// which undoes every reservation already taken.
func (s *prescriptionService) Create(ctx context.Context, prescription *models.Prescription) error {
	if err := validatePrescriptionHeader(prescription); err != nil {
		return err
	}
	if err := validatePrescriptionItems(prescription.Items); err != nil {
		return err
	}

	return s.db.WithTx(ctx, func(tx database.DBTX) error {
		prescriptions := s.prescriptions.WithTx(tx)
		items := s.items.WithTx(tx)
		ledger := NewStockLedger(s.medicines.WithTx(tx))

		if err := prescriptions.Create(ctx, prescription); err != nil {
			return err
		}

		for _, item := range prescription.Items {
			item.PrescriptionID = prescription.ID
			if err := ledger.Reserve(ctx, item.MedicineID, item.Quantity); err != nil {
				return err
			}
			if err := items.Insert(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *prescriptionService) Get(ctx context.Context, id int64) (*models.Prescription, error) {
	prescription, err := s.prescriptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByPrescription(ctx, id)
	if err != nil {
		return nil, err
	}
	prescription.Items = items
	return prescription, nil
}

func (s *prescriptionService) Search(ctx context.Context, filter *models.PrescriptionSearchFilter) ([]*models.Prescription, error) {
	if filter == nil {
		filter = &models.PrescriptionSearchFilter{}
	}
	var err error
	filter.Limit, filter.Offset, err = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	return s.prescriptions.Search(ctx, filter)
}

// Update replaces the item set, adjusting stock by the symmetric
// difference per medicine: removed or reduced quantities are released,
// added or increased quantities are reserved. Item rows are deleted and
// re-inserted; the header row is updated. All in one transaction.
func (s *prescriptionService) Update(ctx context.Context, id int64, header *models.Prescription, newItems []*models.PrescriptionItem) error {
	if err := validatePrescriptionHeader(header); err != nil {
		return err
	}
	if err := validatePrescriptionItems(newItems); err != nil {
		return err
	}

	return s.db.WithTx(ctx, func(tx database.DBTX) error {
		prescriptions := s.prescriptions.WithTx(tx)
		items := s.items.WithTx(tx)
		ledger := NewStockLedger(s.medicines.WithTx(tx))

		if _, err := prescriptions.GetByID(ctx, id); err != nil {
			return err
		}

		currentItems, err := items.ListByPrescription(ctx, id)
		if err != nil {
			return err
		}

		currentQty := make(map[int64]int, len(currentItems))
		for _, item := range currentItems {
			currentQty[item.MedicineID] += item.Quantity
		}
		newQty := make(map[int64]int, len(newItems))
		for _, item := range newItems {
			newQty[item.MedicineID] += item.Quantity
		}

		// Removed or reduced: give the delta back.
		for medicineID, oldCount := range currentQty {
			if delta := oldCount - newQty[medicineID]; delta > 0 {
				if err := ledger.Release(ctx, medicineID, delta); err != nil {
					return err
				}
			}
		}
		// Added or increased: take the delta.
		for medicineID, newCount := range newQty {
			if delta := newCount - currentQty[medicineID]; delta > 0 {
				if err := ledger.Reserve(ctx, medicineID, delta); err != nil {
					return err
				}
			}
		}

		if err := items.DeleteByPrescription(ctx, id); err != nil {
			return err
		}
		for _, item := range newItems {
			item.PrescriptionID = id
			if err := items.Insert(ctx, item); err != nil {
				return err
			}
		}

		header.ID = id
		return prescriptions.UpdateHeader(ctx, header)
	})
}

// Delete restores stock for every item, then removes item rows before
// the header row.
func (s *prescriptionService) Delete(ctx context.Context, id int64) error {
	return s.db.WithTx(ctx, func(tx database.DBTX) error {
		prescriptions := s.prescriptions.WithTx(tx)
		items := s.items.WithTx(tx)
		ledger := NewStockLedger(s.medicines.WithTx(tx))

		if _, err := prescriptions.GetByID(ctx, id); err != nil {
			return err
		}

		currentItems, err := items.ListByPrescription(ctx, id)
		if err != nil {
			return err
		}
		for _, item := range currentItems {
			if err := ledger.Release(ctx, item.MedicineID, item.Quantity); err != nil {
				return err
			}
		}

		if err := items.DeleteByPrescription(ctx, id); err != nil {
			return err
		}
		return prescriptions.Delete(ctx, id)
	})
}
