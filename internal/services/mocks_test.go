package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"pharmacore/internal/models"
	"pharmacore/internal/repositories"
	"pharmacore/pkg/database"
)

// fakeTxRunner runs the transaction body directly, with no database
// underneath. A nil DBTX is fine because mock repositories return
// themselves from WithTx.
type fakeTxRunner struct {
	err error // returned instead of running the body when set
}

func (f *fakeTxRunner) WithTx(ctx context.Context, fn func(tx database.DBTX) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type MockMedicineRepository struct {
	mock.Mock
}

func (m *MockMedicineRepository) WithTx(tx database.DBTX) repositories.MedicineRepository {
	return m
}

func (m *MockMedicineRepository) Create(ctx context.Context, medicine *models.Medicine) error {
	args := m.Called(ctx, medicine)
	return args.Error(0)
}

func (m *MockMedicineRepository) GetByID(ctx context.Context, id int64) (*models.Medicine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Medicine), args.Error(1)
}

func (m *MockMedicineRepository) GetByIDWithSupplier(ctx context.Context, id int64) (*models.Medicine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Medicine), args.Error(1)
}

func (m *MockMedicineRepository) Update(ctx context.Context, medicine *models.Medicine) error {
	args := m.Called(ctx, medicine)
	return args.Error(0)
}

func (m *MockMedicineRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMedicineRepository) Search(ctx context.Context, filter *models.MedicineSearchFilter) ([]*models.Medicine, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Medicine), args.Error(1)
}

func (m *MockMedicineRepository) LowStock(ctx context.Context, threshold int) ([]*models.Medicine, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]*models.Medicine), args.Error(1)
}

func (m *MockMedicineRepository) ReserveStock(ctx context.Context, id int64, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockMedicineRepository) ReleaseStock(ctx context.Context, id int64, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) WithTx(tx database.DBTX) repositories.OrderRepository {
	return m
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteByCustomer(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) WithTx(tx database.DBTX) repositories.OrderItemRepository {
	return m
}

func (m *MockOrderItemRepository) Insert(ctx context.Context, item *models.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderItemRepository) ListByOrder(ctx context.Context, orderID int64) ([]*models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*models.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderItemRepository) DeleteByMedicine(ctx context.Context, medicineID int64) error {
	args := m.Called(ctx, medicineID)
	return args.Error(0)
}

func (m *MockOrderItemRepository) DeleteByCustomer(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) WithTx(tx database.DBTX) repositories.CustomerRepository {
	return m
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) List(ctx context.Context, search string, limit, offset int) ([]*models.Customer, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) AddLoyaltyPoints(ctx context.Context, id int64, points int) error {
	args := m.Called(ctx, id, points)
	return args.Error(0)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) WithTx(tx database.DBTX) repositories.SaleRepository {
	return m
}

func (m *MockSaleRepository) Insert(ctx context.Context, sale *models.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteByCustomer(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) WithTx(tx database.DBTX) repositories.PaymentRepository {
	return m
}

func (m *MockPaymentRepository) Insert(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*models.Payment, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) DeleteByCustomer(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type MockPrescriptionRepository struct {
	mock.Mock
}

func (m *MockPrescriptionRepository) WithTx(tx database.DBTX) repositories.PrescriptionRepository {
	return m
}

func (m *MockPrescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	args := m.Called(ctx, prescription)
	return args.Error(0)
}

func (m *MockPrescriptionRepository) GetByID(ctx context.Context, id int64) (*models.Prescription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) UpdateHeader(ctx context.Context, prescription *models.Prescription) error {
	args := m.Called(ctx, prescription)
	return args.Error(0)
}

func (m *MockPrescriptionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPrescriptionRepository) Search(ctx context.Context, filter *models.PrescriptionSearchFilter) ([]*models.Prescription, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) DeleteByCustomer(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type MockPrescriptionItemRepository struct {
	mock.Mock
}

func (m *MockPrescriptionItemRepository) WithTx(tx database.DBTX) repositories.PrescriptionItemRepository {
	return m
}

func (m *MockPrescriptionItemRepository) Insert(ctx context.Context, item *models.PrescriptionItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPrescriptionItemRepository) ListByPrescription(ctx context.Context, prescriptionID int64) ([]*models.PrescriptionItem, error) {
	args := m.Called(ctx, prescriptionID)
	return args.Get(0).([]*models.PrescriptionItem), args.Error(1)
}

func (m *MockPrescriptionItemRepository) DeleteByPrescription(ctx context.Context, prescriptionID int64) error {
	args := m.Called(ctx, prescriptionID)
	return args.Error(0)
}

func (m *MockPrescriptionItemRepository) DeleteByCustomer(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetMedicine(ctx context.Context, medicineID int64) (*models.Medicine, error) {
	args := m.Called(ctx, medicineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Medicine), args.Error(1)
}

func (m *MockCacheService) SetMedicine(ctx context.Context, medicine *models.Medicine, ttl time.Duration) error {
	args := m.Called(ctx, medicine, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteMedicine(ctx context.Context, medicineID int64) error {
	args := m.Called(ctx, medicineID)
	return args.Error(0)
}

func (m *MockCacheService) GetReport(ctx context.Context, name string, dest any) (bool, error) {
	args := m.Called(ctx, name, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetReport(ctx context.Context, name string, payload any, ttl time.Duration) error {
	args := m.Called(ctx, name, payload, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateReports(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
