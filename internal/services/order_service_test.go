package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/testhelpers"
)

type orderServiceMocks struct {
	orders    *MockOrderRepository
	items     *MockOrderItemRepository
	medicines *MockMedicineRepository
	customers *MockCustomerRepository
	sales     *MockSaleRepository
	payments  *MockPaymentRepository
}

func newOrderServiceForTest() (OrderServiceInterface, *orderServiceMocks) {
	m := &orderServiceMocks{
		orders:    new(MockOrderRepository),
		items:     new(MockOrderItemRepository),
		medicines: new(MockMedicineRepository),
		customers: new(MockCustomerRepository),
		sales:     new(MockSaleRepository),
		payments:  new(MockPaymentRepository),
	}
	svc := NewOrderService(&fakeTxRunner{}, m.orders, m.items, m.medicines, m.customers, m.sales, m.payments)
	return svc, m
}

func TestNewDraftRejectsUnknownOrderType(t *testing.T) {
	svc, _ := newOrderServiceForTest()

	_, err := svc.NewDraft("mail-order")

	var validationErr *common.ValidationError
	assert.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))
}

func TestAddLineSnapshotsRetailPrice(t *testing.T) {
	svc, m := newOrderServiceForTest()
	m.medicines.On("GetByID", mock.Anything, int64(1)).
		Return(testhelpers.NewTestMedicine(1, "Aspirin", 100, 2.50), nil)

	draft, err := svc.NewDraft(models.OrderTypeRetail)
	assert.NoError(t, err)

	err = svc.AddLine(context.Background(), draft, 1, 4)

	assert.NoError(t, err)
	assert.Len(t, draft.Lines, 1)
	assert.Equal(t, 2.50, draft.Lines[0].UnitPrice)
	assert.Equal(t, 10.0, draft.Lines[0].Subtotal)
}

func TestAddLineUsesWholesalePriceForWholesaleOrders(t *testing.T) {
	svc, m := newOrderServiceForTest()
	medicine := testhelpers.NewTestMedicine(1, "Aspirin", 100, 10.0)
	medicine.WholesalePrice = 7.0
	m.medicines.On("GetByID", mock.Anything, int64(1)).Return(medicine, nil)

	draft, err := svc.NewDraft(models.OrderTypeWholesale)
	assert.NoError(t, err)

	err = svc.AddLine(context.Background(), draft, 1, 3)

	assert.NoError(t, err)
	assert.Equal(t, 7.0, draft.Lines[0].UnitPrice)
	assert.Equal(t, 21.0, draft.Lines[0].Subtotal)
}

func TestAddLineMergesDuplicateMedicineLines(t *testing.T) {
	svc, m := newOrderServiceForTest()
	m.medicines.On("GetByID", mock.Anything, int64(1)).
		Return(testhelpers.NewTestMedicine(1, "Aspirin", 100, 2.50), nil)

	draft, err := svc.NewDraft(models.OrderTypeRetail)
	assert.NoError(t, err)

	assert.NoError(t, svc.AddLine(context.Background(), draft, 1, 3))
	assert.NoError(t, svc.AddLine(context.Background(), draft, 1, 2))

	assert.Len(t, draft.Lines, 1)
	assert.Equal(t, 5, draft.Lines[0].Quantity)
	assert.Equal(t, 12.50, draft.Lines[0].Subtotal)
	assert.Equal(t, 12.50, draft.Total())
}

func TestAddLineMergedQuantityCannotExceedStock(t *testing.T) {
	svc, m := newOrderServiceForTest()
	m.medicines.On("GetByID", mock.Anything, int64(1)).
		Return(testhelpers.NewTestMedicine(1, "Aspirin", 4, 2.50), nil)

	draft, err := svc.NewDraft(models.OrderTypeRetail)
	assert.NoError(t, err)
	assert.NoError(t, svc.AddLine(context.Background(), draft, 1, 3))

	err = svc.AddLine(context.Background(), draft, 1, 2)

	var stockErr *common.InsufficientStockError
	assert.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 5, stockErr.Requested)
	assert.Len(t, draft.Lines, 1)
	assert.Equal(t, 3, draft.Lines[0].Quantity)
}

func TestAddLineRejectsInsufficientStock(t *testing.T) {
	svc, m := newOrderServiceForTest()
	m.medicines.On("GetByID", mock.Anything, int64(1)).
		Return(testhelpers.NewTestMedicine(1, "Aspirin", 5, 2.50), nil)

	draft, err := svc.NewDraft(models.OrderTypeRetail)
	assert.NoError(t, err)

	err = svc.AddLine(context.Background(), draft, 1, 10)

	var stockErr *common.InsufficientStockError
	assert.Error(t, err)
	assert.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(1), stockErr.MedicineID)
	assert.Empty(t, draft.Lines)
}

func TestAddLineRejectsNonPositiveQuantity(t *testing.T) {
	svc, m := newOrderServiceForTest()

	draft, err := svc.NewDraft(models.OrderTypeRetail)
	assert.NoError(t, err)

	err = svc.AddLine(context.Background(), draft, 1, 0)

	assert.Error(t, err)
	m.medicines.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCommitWritesEverythingAndAwardsLoyalty(t *testing.T) {
	svc, m := newOrderServiceForTest()
	m.medicines.On("GetByID", mock.Anything, int64(1)).
		Return(testhelpers.NewTestMedicine(1, "Aspirin", 100, 2.50), nil)
	m.medicines.On("GetByID", mock.Anything, int64(2)).
		Return(testhelpers.NewTestMedicine(2, "Ibuprofen", 100, 5.00), nil)

	m.orders.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Order).ID = 42
		}).Return(nil)
	m.items.On("Insert", mock.Anything, mock.AnythingOfType("*models.OrderItem")).Return(nil)
	m.medicines.On("ReserveStock", mock.Anything, int64(1), 2).Return(nil)
	m.medicines.On("ReserveStock", mock.Anything, int64(2), 4).Return(nil)
	m.sales.On("Insert", mock.Anything, mock.AnythingOfType("*models.Sale")).Return(nil)
	m.payments.On("Insert", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
		return p.Amount == 25.0 && p.Method == "cash" && p.OrderID != nil && *p.OrderID == 42
	})).Return(nil)
	// 2 x 2.50 + 4 x 5.00 = 25.00 -> 250 points
	m.customers.On("AddLoyaltyPoints", mock.Anything, int64(7), 250).Return(nil)

	draft, err := svc.NewDraft(models.OrderTypeRetail)
	assert.NoError(t, err)
	assert.NoError(t, svc.AddLine(context.Background(), draft, 1, 2))
	assert.NoError(t, svc.AddLine(context.Background(), draft, 2, 4))

	order, err := svc.Commit(context.Background(), draft, 7, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, int64(42), order.Items[0].OrderID)
	m.orders.AssertExpectations(t)
	m.items.AssertNumberOfCalls(t, "Insert", 2)
	m.sales.AssertNumberOfCalls(t, "Insert", 2)
	m.payments.AssertExpectations(t)
	m.customers.AssertExpectations(t)
}

func TestCommitRejectsEmptyDraft(t *testing.T) {
	svc, m := newOrderServiceForTest()

	draft, err := svc.NewDraft(models.OrderTypeRetail)
	assert.NoError(t, err)

	_, err = svc.Commit(context.Background(), draft, 7, 3)

	assert.Error(t, err)
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommitFailsWhenReservationFails(t *testing.T) {
	svc, m := newOrderServiceForTest()
	m.medicines.On("GetByID", mock.Anything, int64(1)).
		Return(testhelpers.NewTestMedicine(1, "Aspirin", 100, 2.50), nil)
	m.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.items.On("Insert", mock.Anything, mock.Anything).Return(nil)
	// Another sale drained the shelf between AddLine and Commit
	m.medicines.On("ReserveStock", mock.Anything, int64(1), 2).
		Return(&common.InsufficientStockError{MedicineID: 1, Requested: 2})

	draft, err := svc.NewDraft(models.OrderTypeRetail)
	assert.NoError(t, err)
	assert.NoError(t, svc.AddLine(context.Background(), draft, 1, 2))

	_, err = svc.Commit(context.Background(), draft, 7, 3)

	var stockErr *common.InsufficientStockError
	assert.Error(t, err)
	assert.True(t, errors.As(err, &stockErr))
	m.customers.AssertNotCalled(t, "AddLoyaltyPoints", mock.Anything, mock.Anything, mock.Anything)
	m.payments.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)

	// A failed commit leaves the draft open for retry
	assert.False(t, draft.committed)
}

func TestCommitTwiceRejected(t *testing.T) {
	svc, m := newOrderServiceForTest()
	m.medicines.On("GetByID", mock.Anything, int64(1)).
		Return(testhelpers.NewTestMedicine(1, "Aspirin", 100, 2.50), nil)
	m.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.items.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.medicines.On("ReserveStock", mock.Anything, int64(1), 2).Return(nil)
	m.sales.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.payments.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.customers.On("AddLoyaltyPoints", mock.Anything, int64(7), mock.Anything).Return(nil)

	draft, err := svc.NewDraft(models.OrderTypeRetail)
	assert.NoError(t, err)
	assert.NoError(t, svc.AddLine(context.Background(), draft, 1, 2))

	_, err = svc.Commit(context.Background(), draft, 7, 3)
	assert.NoError(t, err)

	_, err = svc.Commit(context.Background(), draft, 7, 3)
	assert.Error(t, err)

	err = svc.AddLine(context.Background(), draft, 1, 1)
	assert.Error(t, err)
}

func TestDeleteOrderRemovesItemsBeforeHeader(t *testing.T) {
	svc, m := newOrderServiceForTest()
	var calls []string
	m.items.On("DeleteByOrder", mock.Anything, int64(42)).
		Run(func(mock.Arguments) { calls = append(calls, "items") }).Return(nil)
	m.orders.On("Delete", mock.Anything, int64(42)).
		Run(func(mock.Arguments) { calls = append(calls, "header") }).Return(nil)

	err := svc.DeleteOrder(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, []string{"items", "header"}, calls)
}
