package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
)

type customerServiceMocks struct {
	customers         *MockCustomerRepository
	orders            *MockOrderRepository
	orderItems        *MockOrderItemRepository
	prescriptions     *MockPrescriptionRepository
	prescriptionItems *MockPrescriptionItemRepository
	sales             *MockSaleRepository
	payments          *MockPaymentRepository
}

func newCustomerServiceForTest() (CustomerServiceInterface, *customerServiceMocks) {
	m := &customerServiceMocks{
		customers:         new(MockCustomerRepository),
		orders:            new(MockOrderRepository),
		orderItems:        new(MockOrderItemRepository),
		prescriptions:     new(MockPrescriptionRepository),
		prescriptionItems: new(MockPrescriptionItemRepository),
		sales:             new(MockSaleRepository),
		payments:          new(MockPaymentRepository),
	}
	svc := NewCustomerService(&fakeTxRunner{}, m.customers, m.orders, m.orderItems,
		m.prescriptions, m.prescriptionItems, m.sales, m.payments)
	return svc, m
}

func TestCreateCustomerRequiresName(t *testing.T) {
	svc, m := newCustomerServiceForTest()

	err := svc.Create(context.Background(), &models.Customer{Name: "  "})

	assert.Error(t, err)
	m.customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteCustomerCascadesChildrenFirst(t *testing.T) {
	svc, m := newCustomerServiceForTest()

	m.customers.On("GetByID", mock.Anything, int64(7)).Return(&models.Customer{ID: 7, Name: "Pat"}, nil)

	var calls []string
	record := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) { calls = append(calls, name) }
	}
	m.orderItems.On("DeleteByCustomer", mock.Anything, int64(7)).Run(record("order_items")).Return(nil)
	m.orders.On("DeleteByCustomer", mock.Anything, int64(7)).Run(record("orders")).Return(nil)
	m.prescriptionItems.On("DeleteByCustomer", mock.Anything, int64(7)).Run(record("prescription_items")).Return(nil)
	m.prescriptions.On("DeleteByCustomer", mock.Anything, int64(7)).Run(record("prescriptions")).Return(nil)
	m.sales.On("DeleteByCustomer", mock.Anything, int64(7)).Run(record("sales")).Return(nil)
	m.payments.On("DeleteByCustomer", mock.Anything, int64(7)).Run(record("payments")).Return(nil)
	m.customers.On("Delete", mock.Anything, int64(7)).Run(record("customer")).Return(nil)

	err := svc.Delete(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, []string{
		"order_items", "orders",
		"prescription_items", "prescriptions",
		"sales", "payments",
		"customer",
	}, calls)
}

func TestDeleteCustomerUnknownIDFails(t *testing.T) {
	svc, m := newCustomerServiceForTest()

	m.customers.On("GetByID", mock.Anything, int64(99)).
		Return(nil, common.NewNotFoundError("customer", 99))

	err := svc.Delete(context.Background(), 99)

	var notFound *common.NotFoundError
	assert.Error(t, err)
	assert.True(t, errors.As(err, &notFound))
	m.orders.AssertNotCalled(t, "DeleteByCustomer", mock.Anything, mock.Anything)
}

func TestDeleteCustomerAbortsOnChildFailure(t *testing.T) {
	svc, m := newCustomerServiceForTest()

	m.customers.On("GetByID", mock.Anything, int64(7)).Return(&models.Customer{ID: 7, Name: "Pat"}, nil)
	m.orderItems.On("DeleteByCustomer", mock.Anything, int64(7)).Return(nil)
	m.orders.On("DeleteByCustomer", mock.Anything, int64(7)).Return(errors.New("constraint violation"))

	err := svc.Delete(context.Background(), 7)

	assert.Error(t, err)
	m.customers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdjustLoyaltyPointsRejectsZero(t *testing.T) {
	svc, m := newCustomerServiceForTest()

	err := svc.AdjustLoyaltyPoints(context.Background(), 7, 0)

	assert.Error(t, err)
	m.customers.AssertNotCalled(t, "AddLoyaltyPoints", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustLoyaltyPointsDelegates(t *testing.T) {
	svc, m := newCustomerServiceForTest()
	m.customers.On("AddLoyaltyPoints", mock.Anything, int64(7), -30).Return(nil)

	err := svc.AdjustLoyaltyPoints(context.Background(), 7, -30)

	assert.NoError(t, err)
	m.customers.AssertExpectations(t)
}
