package repositories

import (
	"context"

	"pharmacore/internal/models"
	"pharmacore/pkg/database"
)

type PrescriptionItemRepository interface {
	WithTx(tx database.DBTX) PrescriptionItemRepository
	Insert(ctx context.Context, item *models.PrescriptionItem) error
	ListByPrescription(ctx context.Context, prescriptionID int64) ([]*models.PrescriptionItem, error)
	DeleteByPrescription(ctx context.Context, prescriptionID int64) error
	DeleteByCustomer(ctx context.Context, customerID int64) error
}

type prescriptionItemRepo struct {
	db database.DBTX
}

func NewPrescriptionItemRepo(db database.DBTX) PrescriptionItemRepository {
	return &prescriptionItemRepo{db: db}
}

func (r *prescriptionItemRepo) WithTx(tx database.DBTX) PrescriptionItemRepository {
	return &prescriptionItemRepo{db: tx}
}

func (r *prescriptionItemRepo) Insert(ctx context.Context, item *models.PrescriptionItem) error {
	query := `
		INSERT INTO prescription_items (prescription_id, medicine_id, quantity, dosage, instructions)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, item.PrescriptionID, item.MedicineID, item.Quantity, item.Dosage, item.Instructions)
	return database.WrapError("insert prescription item", err)
}

func (r *prescriptionItemRepo) ListByPrescription(ctx context.Context, prescriptionID int64) ([]*models.PrescriptionItem, error) {
	query := `
		SELECT pi.prescription_id, pi.medicine_id, m.name, pi.quantity, pi.dosage, pi.instructions
		FROM prescription_items pi
		JOIN medicines m ON m.medicine_id = pi.medicine_id
		WHERE pi.prescription_id = $1
		ORDER BY m.name
	`
	rows, err := r.db.Query(ctx, query, prescriptionID)
	if err != nil {
		return nil, database.WrapError("list prescription items", err)
	}
	defer rows.Close()

	var items []*models.PrescriptionItem
	for rows.Next() {
		item := &models.PrescriptionItem{}
		if err := rows.Scan(&item.PrescriptionID, &item.MedicineID, &item.MedicineName, &item.Quantity, &item.Dosage, &item.Instructions); err != nil {
			return nil, database.WrapError("scan prescription item row", err)
		}
		items = append(items, item)
	}
	return items, database.WrapError("iterate prescription item rows", rows.Err())
}

func (r *prescriptionItemRepo) DeleteByPrescription(ctx context.Context, prescriptionID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM prescription_items WHERE prescription_id = $1`, prescriptionID)
	return database.WrapError("delete prescription items", err)
}

func (r *prescriptionItemRepo) DeleteByCustomer(ctx context.Context, customerID int64) error {
	query := `
		DELETE FROM prescription_items
		WHERE prescription_id IN (SELECT prescription_id FROM prescriptions WHERE customer_id = $1)
	`
	_, err := r.db.Exec(ctx, query, customerID)
	return database.WrapError("delete prescription items by customer", err)
}
