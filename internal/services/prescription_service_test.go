package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
)

func newPrescriptionServiceForTest() (PrescriptionServiceInterface, *MockPrescriptionRepository, *MockPrescriptionItemRepository, *MockMedicineRepository) {
	prescriptions := new(MockPrescriptionRepository)
	items := new(MockPrescriptionItemRepository)
	medicines := new(MockMedicineRepository)
	svc := NewPrescriptionService(&fakeTxRunner{}, prescriptions, items, medicines)
	return svc, prescriptions, items, medicines
}

func validHeader() *models.Prescription {
	issue := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	expiry := issue.AddDate(0, 1, 0)
	return &models.Prescription{
		CustomerID: 7,
		DoctorName: "Dr. House",
		IssueDate:  issue,
		ExpiryDate: &expiry,
	}
}

func TestCreatePrescriptionReservesStockPerItem(t *testing.T) {
	svc, prescriptions, items, medicines := newPrescriptionServiceForTest()

	prescriptions.On("Create", mock.Anything, mock.AnythingOfType("*models.Prescription")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Prescription).ID = 9
		}).Return(nil)
	medicines.On("ReserveStock", mock.Anything, int64(1), 10).Return(nil)
	medicines.On("ReserveStock", mock.Anything, int64(2), 5).Return(nil)
	items.On("Insert", mock.Anything, mock.AnythingOfType("*models.PrescriptionItem")).Return(nil)

	prescription := validHeader()
	prescription.Items = []*models.PrescriptionItem{
		{MedicineID: 1, Quantity: 10, Dosage: "500mg"},
		{MedicineID: 2, Quantity: 5, Dosage: "200mg"},
	}

	err := svc.Create(context.Background(), prescription)

	assert.NoError(t, err)
	assert.Equal(t, int64(9), prescription.Items[0].PrescriptionID)
	medicines.AssertExpectations(t)
	items.AssertNumberOfCalls(t, "Insert", 2)
}

func TestCreatePrescriptionFailsWhenAnyItemShort(t *testing.T) {
	svc, prescriptions, items, medicines := newPrescriptionServiceForTest()

	prescriptions.On("Create", mock.Anything, mock.Anything).Return(nil)
	medicines.On("ReserveStock", mock.Anything, int64(1), 10).Return(nil)
	items.On("Insert", mock.Anything, mock.Anything).Return(nil)
	medicines.On("ReserveStock", mock.Anything, int64(2), 5).
		Return(&common.InsufficientStockError{MedicineID: 2, Requested: 5})

	prescription := validHeader()
	prescription.Items = []*models.PrescriptionItem{
		{MedicineID: 1, Quantity: 10},
		{MedicineID: 2, Quantity: 5},
	}

	err := svc.Create(context.Background(), prescription)

	var stockErr *common.InsufficientStockError
	assert.Error(t, err)
	assert.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(2), stockErr.MedicineID)
}

func TestCreatePrescriptionValidatesHeader(t *testing.T) {
	svc, prescriptions, _, _ := newPrescriptionServiceForTest()

	header := validHeader()
	header.DoctorName = "  "

	err := svc.Create(context.Background(), header)

	assert.Error(t, err)
	prescriptions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePrescriptionRejectsExpiryBeforeIssue(t *testing.T) {
	svc, _, _, _ := newPrescriptionServiceForTest()

	header := validHeader()
	bad := header.IssueDate.AddDate(0, 0, -1)
	header.ExpiryDate = &bad

	err := svc.Create(context.Background(), header)

	var validationErr *common.ValidationError
	assert.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "expiry_date", validationErr.Field)
}

func TestUpdatePrescriptionAdjustsStockBySymmetricDifference(t *testing.T) {
	svc, prescriptions, items, medicines := newPrescriptionServiceForTest()

	prescriptions.On("GetByID", mock.Anything, int64(9)).Return(validHeader(), nil)
	items.On("ListByPrescription", mock.Anything, int64(9)).Return([]*models.PrescriptionItem{
		{PrescriptionID: 9, MedicineID: 1, Quantity: 10}, // will drop to 6
		{PrescriptionID: 9, MedicineID: 2, Quantity: 5},  // removed entirely
		{PrescriptionID: 9, MedicineID: 3, Quantity: 2},  // will grow to 7
	}, nil)

	medicines.On("ReleaseStock", mock.Anything, int64(1), 4).Return(nil)
	medicines.On("ReleaseStock", mock.Anything, int64(2), 5).Return(nil)
	medicines.On("ReserveStock", mock.Anything, int64(3), 5).Return(nil)
	medicines.On("ReserveStock", mock.Anything, int64(4), 8).Return(nil)
	items.On("DeleteByPrescription", mock.Anything, int64(9)).Return(nil)
	items.On("Insert", mock.Anything, mock.Anything).Return(nil)
	prescriptions.On("UpdateHeader", mock.Anything, mock.AnythingOfType("*models.Prescription")).Return(nil)

	newItems := []*models.PrescriptionItem{
		{MedicineID: 1, Quantity: 6},
		{MedicineID: 3, Quantity: 7},
		{MedicineID: 4, Quantity: 8}, // new medicine
	}

	err := svc.Update(context.Background(), 9, validHeader(), newItems)

	assert.NoError(t, err)
	medicines.AssertExpectations(t)
	items.AssertNumberOfCalls(t, "Insert", 3)
	prescriptions.AssertExpectations(t)
}

func TestUpdatePrescriptionIdenticalItemsTouchesNoStock(t *testing.T) {
	svc, prescriptions, items, medicines := newPrescriptionServiceForTest()

	current := []*models.PrescriptionItem{
		{PrescriptionID: 9, MedicineID: 1, Quantity: 10},
	}
	prescriptions.On("GetByID", mock.Anything, int64(9)).Return(validHeader(), nil)
	items.On("ListByPrescription", mock.Anything, int64(9)).Return(current, nil)
	items.On("DeleteByPrescription", mock.Anything, int64(9)).Return(nil)
	items.On("Insert", mock.Anything, mock.Anything).Return(nil)
	prescriptions.On("UpdateHeader", mock.Anything, mock.Anything).Return(nil)

	err := svc.Update(context.Background(), 9, validHeader(), []*models.PrescriptionItem{
		{MedicineID: 1, Quantity: 10},
	})

	assert.NoError(t, err)
	medicines.AssertNotCalled(t, "ReserveStock", mock.Anything, mock.Anything, mock.Anything)
	medicines.AssertNotCalled(t, "ReleaseStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePrescriptionUnknownIDFails(t *testing.T) {
	svc, prescriptions, items, _ := newPrescriptionServiceForTest()

	prescriptions.On("GetByID", mock.Anything, int64(99)).
		Return(nil, common.NewNotFoundError("prescription", 99))

	err := svc.Update(context.Background(), 99, validHeader(), nil)

	var notFound *common.NotFoundError
	assert.Error(t, err)
	assert.True(t, errors.As(err, &notFound))
	items.AssertNotCalled(t, "DeleteByPrescription", mock.Anything, mock.Anything)
}

func TestDeletePrescriptionReleasesStockThenRemovesRows(t *testing.T) {
	svc, prescriptions, items, medicines := newPrescriptionServiceForTest()

	prescriptions.On("GetByID", mock.Anything, int64(9)).Return(validHeader(), nil)
	items.On("ListByPrescription", mock.Anything, int64(9)).Return([]*models.PrescriptionItem{
		{PrescriptionID: 9, MedicineID: 1, Quantity: 10},
		{PrescriptionID: 9, MedicineID: 2, Quantity: 5},
	}, nil)

	var calls []string
	medicines.On("ReleaseStock", mock.Anything, int64(1), 10).
		Run(func(mock.Arguments) { calls = append(calls, "release-1") }).Return(nil)
	medicines.On("ReleaseStock", mock.Anything, int64(2), 5).
		Run(func(mock.Arguments) { calls = append(calls, "release-2") }).Return(nil)
	items.On("DeleteByPrescription", mock.Anything, int64(9)).
		Run(func(mock.Arguments) { calls = append(calls, "items") }).Return(nil)
	prescriptions.On("Delete", mock.Anything, int64(9)).
		Run(func(mock.Arguments) { calls = append(calls, "header") }).Return(nil)

	err := svc.Delete(context.Background(), 9)

	assert.NoError(t, err)
	assert.Equal(t, []string{"release-1", "release-2", "items", "header"}, calls)
}

func TestDeletePrescriptionUnknownIDFails(t *testing.T) {
	svc, prescriptions, items, _ := newPrescriptionServiceForTest()

	prescriptions.On("GetByID", mock.Anything, int64(99)).
		Return(nil, common.NewNotFoundError("prescription", 99))

	err := svc.Delete(context.Background(), 99)

	assert.Error(t, err)
	items.AssertNotCalled(t, "DeleteByPrescription", mock.Anything, mock.Anything)
}
