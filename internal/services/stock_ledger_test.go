package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pharmacore/internal/common"
)

func TestReserveDelegatesToConditionalDecrement(t *testing.T) {
	medicines := new(MockMedicineRepository)
	medicines.On("ReserveStock", mock.Anything, int64(1), 5).Return(nil)
	ledger := NewStockLedger(medicines)

	err := ledger.Reserve(context.Background(), 1, 5)

	assert.NoError(t, err)
	medicines.AssertExpectations(t)
}

func TestReserveRejectsNonPositiveQuantity(t *testing.T) {
	medicines := new(MockMedicineRepository)
	ledger := NewStockLedger(medicines)

	for _, quantity := range []int{0, -3} {
		err := ledger.Reserve(context.Background(), 1, quantity)

		var validationErr *common.ValidationError
		assert.Error(t, err)
		assert.True(t, errors.As(err, &validationErr))
	}
	medicines.AssertNotCalled(t, "ReserveStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestReserveRejectsOversizedAdjustment(t *testing.T) {
	medicines := new(MockMedicineRepository)
	ledger := NewStockLedger(medicines)

	err := ledger.Reserve(context.Background(), 1, maxStockAdjustment+1)

	assert.Error(t, err)
	medicines.AssertNotCalled(t, "ReserveStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestReservePropagatesInsufficientStock(t *testing.T) {
	medicines := new(MockMedicineRepository)
	medicines.On("ReserveStock", mock.Anything, int64(1), 5).
		Return(&common.InsufficientStockError{MedicineID: 1, Requested: 5})
	ledger := NewStockLedger(medicines)

	err := ledger.Reserve(context.Background(), 1, 5)

	var stockErr *common.InsufficientStockError
	assert.True(t, errors.As(err, &stockErr))
}

func TestReleaseRejectsNonPositiveAndOversized(t *testing.T) {
	medicines := new(MockMedicineRepository)
	ledger := NewStockLedger(medicines)

	assert.Error(t, ledger.Release(context.Background(), 1, 0))
	assert.Error(t, ledger.Release(context.Background(), 1, -1))
	assert.Error(t, ledger.Release(context.Background(), 1, maxStockAdjustment+1))
	medicines.AssertNotCalled(t, "ReleaseStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestReleaseDelegates(t *testing.T) {
	medicines := new(MockMedicineRepository)
	medicines.On("ReleaseStock", mock.Anything, int64(1), 5).Return(nil)
	ledger := NewStockLedger(medicines)

	err := ledger.Release(context.Background(), 1, 5)

	assert.NoError(t, err)
	medicines.AssertExpectations(t)
}
