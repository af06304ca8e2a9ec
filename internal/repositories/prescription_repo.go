package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/pkg/database"
)

type PrescriptionRepository interface {
	WithTx(tx database.DBTX) PrescriptionRepository
	Create(ctx context.Context, prescription *models.Prescription) error
	GetByID(ctx context.Context, id int64) (*models.Prescription, error)
	UpdateHeader(ctx context.Context, prescription *models.Prescription) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter *models.PrescriptionSearchFilter) ([]*models.Prescription, error)
	DeleteByCustomer(ctx context.Context, customerID int64) error
}

type prescriptionRepo struct {
	db database.DBTX
}

func NewPrescriptionRepo(db database.DBTX) PrescriptionRepository {
	return &prescriptionRepo{db: db}
}

func (r *prescriptionRepo) WithTx(tx database.DBTX) PrescriptionRepository {
	return &prescriptionRepo{db: tx}
}

func (r *prescriptionRepo) Create(ctx context.Context, prescription *models.Prescription) error {
	query := `
		INSERT INTO prescriptions (customer_id, doctor_name, doctor_license, issue_date, expiry_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING prescription_id
	`
	err := r.db.QueryRow(ctx, query, prescription.CustomerID, prescription.DoctorName, prescription.DoctorLicense, prescription.IssueDate, prescription.ExpiryDate, prescription.Notes).Scan(&prescription.ID)
	return database.WrapError("insert prescription", err)
}

func (r *prescriptionRepo) GetByID(ctx context.Context, id int64) (*models.Prescription, error) {
	prescription := &models.Prescription{}
	query := `
		SELECT p.prescription_id, p.customer_id, c.name, p.doctor_name, p.doctor_license, p.issue_date, p.expiry_date, p.notes
		FROM prescriptions p
		JOIN customers c ON c.customer_id = p.customer_id
		WHERE p.prescription_id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&prescription.ID, &prescription.CustomerID, &prescription.CustomerName, &prescription.DoctorName, &prescription.DoctorLicense, &prescription.IssueDate, &prescription.ExpiryDate, &prescription.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewNotFoundError("prescription", id)
	}
	if err != nil {
		return nil, database.WrapError("select prescription", err)
	}
	return prescription, nil
}

func (r *prescriptionRepo) UpdateHeader(ctx context.Context, prescription *models.Prescription) error {
	query := `
		UPDATE prescriptions
		SET customer_id = $1, doctor_name = $2, doctor_license = $3, issue_date = $4, expiry_date = $5, notes = $6
		WHERE prescription_id = $7
	`
	tag, err := r.db.Exec(ctx, query, prescription.CustomerID, prescription.DoctorName, prescription.DoctorLicense, prescription.IssueDate, prescription.ExpiryDate, prescription.Notes, prescription.ID)
	if err != nil {
		return database.WrapError("update prescription", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("prescription", prescription.ID)
	}
	return nil
}

func (r *prescriptionRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM prescriptions WHERE prescription_id = $1`, id)
	if err != nil {
		return database.WrapError("delete prescription", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("prescription", id)
	}
	return nil
}

// Search lists prescriptions with the customer name joined in, filtered
// by customer or a name/doctor search term.
func (r *prescriptionRepo) Search(ctx context.Context, filter *models.PrescriptionSearchFilter) ([]*models.Prescription, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	query := `
		SELECT p.prescription_id, p.customer_id, c.name, p.doctor_name, p.doctor_license, p.issue_date, p.expiry_date, p.notes
		FROM prescriptions p
		JOIN customers c ON c.customer_id = p.customer_id
		WHERE ($1 = '' OR c.name ILIKE '%' || $1 || '%' OR p.doctor_name ILIKE '%' || $1 || '%')
		  AND ($2::bigint IS NULL OR p.customer_id = $2)
		ORDER BY p.issue_date DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, filter.Query, filter.CustomerID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, database.WrapError("search prescriptions", err)
	}
	defer rows.Close()

	var prescriptions []*models.Prescription
	for rows.Next() {
		prescription := &models.Prescription{}
		if err := rows.Scan(&prescription.ID, &prescription.CustomerID, &prescription.CustomerName, &prescription.DoctorName, &prescription.DoctorLicense, &prescription.IssueDate, &prescription.ExpiryDate, &prescription.Notes); err != nil {
			return nil, database.WrapError("scan prescription row", err)
		}
		prescriptions = append(prescriptions, prescription)
	}
	return prescriptions, database.WrapError("iterate prescription rows", rows.Err())
}

func (r *prescriptionRepo) DeleteByCustomer(ctx context.Context, customerID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM prescriptions WHERE customer_id = $1`, customerID)
	return database.WrapError("delete prescriptions by customer", err)
}
