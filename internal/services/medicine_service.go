package services

import (
	"context"
	"log"
	"time"

	"pharmacore/internal/caching"
	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/internal/repositories"
	"pharmacore/pkg/database"
)

const medicineCacheTTL = 5 * time.Minute

// MedicineServiceInterface defines medicine catalog operations
type MedicineServiceInterface interface {
	Create(ctx context.Context, medicine *models.Medicine) error
	Get(ctx context.Context, id int64) (*models.Medicine, error)
	Update(ctx context.Context, medicine *models.Medicine) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter *models.MedicineSearchFilter) ([]*models.Medicine, error)
	LowStock(ctx context.Context, threshold int) ([]*models.Medicine, error)
}

type medicineService struct {
	db         TxRunner
	medicines  repositories.MedicineRepository
	orderItems repositories.OrderItemRepository
	cache      caching.CacheService
}

// NewMedicineService creates a new medicine service instance
func NewMedicineService(db TxRunner, medicines repositories.MedicineRepository, orderItems repositories.OrderItemRepository, cache caching.CacheService) MedicineServiceInterface {
	return &medicineService{db: db, medicines: medicines, orderItems: orderItems, cache: cache}
}

func validateMedicine(m *models.Medicine) error {
	if err := common.ValidateRequiredString(m.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeInteger(m.Quantity, "quantity"); err != nil {
		return err
	}
	if err := common.ValidatePositiveFloat(m.Price, "price", 1_000_000); err != nil {
		return err
	}
	if err := common.ValidatePositiveFloat(m.WholesalePrice, "wholesale_price", 1_000_000); err != nil {
		return err
	}
	if m.ExpiryDate.IsZero() {
		return common.NewValidationError("expiry_date", "expiry_date is required")
	}
	return nil
}

func (s *medicineService) Create(ctx context.Context, medicine *models.Medicine) error {
	if err := validateMedicine(medicine); err != nil {
		return err
	}
	return s.medicines.Create(ctx, medicine)
}

// Get reads through the cache. Cache failures degrade to the store, they
// never fail the lookup.
func (s *medicineService) Get(ctx context.Context, id int64) (*models.Medicine, error) {
	if cached, err := s.cache.GetMedicine(ctx, id); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("WARN: medicine cache read failed: %v", err)
	}

	medicine, err := s.medicines.GetByIDWithSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetMedicine(ctx, medicine, medicineCacheTTL); err != nil {
		log.Printf("WARN: medicine cache write failed: %v", err)
	}
	return medicine, nil
}

func (s *medicineService) Update(ctx context.Context, medicine *models.Medicine) error {
	if err := validateMedicine(medicine); err != nil {
		return err
	}
	if err := s.medicines.Update(ctx, medicine); err != nil {
		return err
	}
	if err := s.cache.DeleteMedicine(ctx, medicine.ID); err != nil {
		log.Printf("WARN: medicine cache invalidation failed: %v", err)
	}
	return nil
}

// Delete removes order line references to the medicine before the row
// itself, in one transaction.
func (s *medicineService) Delete(ctx context.Context, id int64) error {
	err := s.db.WithTx(ctx, func(tx database.DBTX) error {
		if err := s.orderItems.WithTx(tx).DeleteByMedicine(ctx, id); err != nil {
			return err
		}
		return s.medicines.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	if err := s.cache.DeleteMedicine(ctx, id); err != nil {
		log.Printf("WARN: medicine cache invalidation failed: %v", err)
	}
	return nil
}

func (s *medicineService) Search(ctx context.Context, filter *models.MedicineSearchFilter) ([]*models.Medicine, error) {
	if filter == nil {
		filter = &models.MedicineSearchFilter{}
	}
	var err error
	filter.Limit, filter.Offset, err = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	return s.medicines.Search(ctx, filter)
}

func (s *medicineService) LowStock(ctx context.Context, threshold int) ([]*models.Medicine, error) {
	if threshold <= 0 {
		threshold = 10
	}
	return s.medicines.LowStock(ctx, threshold)
}
