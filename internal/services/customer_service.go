package services

import (
	"context"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/internal/repositories"
	"pharmacore/pkg/database"
)

// CustomerServiceInterface defines customer operations
type CustomerServiceInterface interface {
	Create(ctx context.Context, customer *models.Customer) error
	Get(ctx context.Context, id int64) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, search string, limit, offset int) ([]*models.Customer, error)
	AdjustLoyaltyPoints(ctx context.Context, id int64, points int) error
}

type customerService struct {
	db                TxRunner
	customers         repositories.CustomerRepository
	orders            repositories.OrderRepository
	orderItems        repositories.OrderItemRepository
	prescriptions     repositories.PrescriptionRepository
	prescriptionItems repositories.PrescriptionItemRepository
	sales             repositories.SaleRepository
	payments          repositories.PaymentRepository
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(
	db TxRunner,
	customers repositories.CustomerRepository,
	orders repositories.OrderRepository,
	orderItems repositories.OrderItemRepository,
	prescriptions repositories.PrescriptionRepository,
	prescriptionItems repositories.PrescriptionItemRepository,
	sales repositories.SaleRepository,
	payments repositories.PaymentRepository,
) CustomerServiceInterface {
	return &customerService{
		db:                db,
		customers:         customers,
		orders:            orders,
		orderItems:        orderItems,
		prescriptions:     prescriptions,
		prescriptionItems: prescriptionItems,
		sales:             sales,
		payments:          payments,
	}
}

func (s *customerService) Create(ctx context.Context, customer *models.Customer) error {
	if err := common.ValidateRequiredString(customer.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeInteger(customer.LoyaltyPoints, "loyalty_points"); err != nil {
		return err
	}
	return s.customers.Create(ctx, customer)
}

func (s *customerService) Get(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *customerService) Update(ctx context.Context, customer *models.Customer) error {
	if err := common.ValidateRequiredString(customer.Name, "name"); err != nil {
		return err
	}
	return s.customers.Update(ctx, customer)
}

// Delete cascades over everything referencing the customer, child rows
// before their parents, in one transaction.
func (s *customerService) Delete(ctx context.Context, id int64) error {
	return s.db.WithTx(ctx, func(tx database.DBTX) error {
		if _, err := s.customers.WithTx(tx).GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.orderItems.WithTx(tx).DeleteByCustomer(ctx, id); err != nil {
			return err
		}
		if err := s.orders.WithTx(tx).DeleteByCustomer(ctx, id); err != nil {
			return err
		}
		if err := s.prescriptionItems.WithTx(tx).DeleteByCustomer(ctx, id); err != nil {
			return err
		}
		if err := s.prescriptions.WithTx(tx).DeleteByCustomer(ctx, id); err != nil {
			return err
		}
		if err := s.sales.WithTx(tx).DeleteByCustomer(ctx, id); err != nil {
			return err
		}
		if err := s.payments.WithTx(tx).DeleteByCustomer(ctx, id); err != nil {
			return err
		}
		return s.customers.WithTx(tx).Delete(ctx, id)
	})
}

func (s *customerService) List(ctx context.Context, search string, limit, offset int) ([]*models.Customer, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.customers.List(ctx, search, limit, offset)
}

func (s *customerService) AdjustLoyaltyPoints(ctx context.Context, id int64, points int) error {
	if points == 0 {
		return common.NewValidationError("points", "points adjustment must be non-zero")
	}
	return s.customers.AddLoyaltyPoints(ctx, id, points)
}
