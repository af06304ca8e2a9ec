package repositories

import (
	"errors"
	"fmt"
	"strings"

	"context"

	"github.com/jackc/pgx/v5"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/pkg/database"
)

type MedicineRepository interface {
	WithTx(tx database.DBTX) MedicineRepository
	Create(ctx context.Context, medicine *models.Medicine) error
	GetByID(ctx context.Context, id int64) (*models.Medicine, error)
	GetByIDWithSupplier(ctx context.Context, id int64) (*models.Medicine, error)
	Update(ctx context.Context, medicine *models.Medicine) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter *models.MedicineSearchFilter) ([]*models.Medicine, error)
	LowStock(ctx context.Context, threshold int) ([]*models.Medicine, error)
	ReserveStock(ctx context.Context, id int64, quantity int) error
	ReleaseStock(ctx context.Context, id int64, quantity int) error
}

type medicineRepo struct {
	db database.DBTX
}

func NewMedicineRepo(db database.DBTX) MedicineRepository {
	return &medicineRepo{db: db}
}

func (r *medicineRepo) WithTx(tx database.DBTX) MedicineRepository {
	return &medicineRepo{db: tx}
}

func (r *medicineRepo) Create(ctx context.Context, medicine *models.Medicine) error {
	query := `
		INSERT INTO medicines (name, quantity, price, wholesale_price, expiry_date, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING medicine_id
	`
	err := r.db.QueryRow(ctx, query, medicine.Name, medicine.Quantity, medicine.Price, medicine.WholesalePrice, medicine.ExpiryDate, medicine.SupplierID).Scan(&medicine.ID)
	return database.WrapError("insert medicine", err)
}

func (r *medicineRepo) GetByID(ctx context.Context, id int64) (*models.Medicine, error) {
	medicine := &models.Medicine{}
	query := `
		SELECT medicine_id, name, quantity, price, wholesale_price, expiry_date, supplier_id, created_at, updated_at
		FROM medicines
		WHERE medicine_id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&medicine.ID, &medicine.Name, &medicine.Quantity, &medicine.Price, &medicine.WholesalePrice, &medicine.ExpiryDate, &medicine.SupplierID, &medicine.CreatedAt, &medicine.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewNotFoundError("medicine", id)
	}
	if err != nil {
		return nil, database.WrapError("select medicine", err)
	}
	return medicine, nil
}

func (r *medicineRepo) GetByIDWithSupplier(ctx context.Context, id int64) (*models.Medicine, error) {
	medicine := &models.Medicine{}
	query := `
		SELECT m.medicine_id, m.name, m.quantity, m.price, m.wholesale_price, m.expiry_date, m.supplier_id, s.name, m.created_at, m.updated_at
		FROM medicines m
		LEFT JOIN suppliers s ON m.supplier_id = s.supplier_id
		WHERE m.medicine_id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&medicine.ID, &medicine.Name, &medicine.Quantity, &medicine.Price, &medicine.WholesalePrice, &medicine.ExpiryDate, &medicine.SupplierID, &medicine.SupplierName, &medicine.CreatedAt, &medicine.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewNotFoundError("medicine", id)
	}
	if err != nil {
		return nil, database.WrapError("select medicine with supplier", err)
	}
	return medicine, nil
}

func (r *medicineRepo) Update(ctx context.Context, medicine *models.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $1, quantity = $2, price = $3, wholesale_price = $4, expiry_date = $5, supplier_id = $6, updated_at = NOW()
		WHERE medicine_id = $7
	`
	tag, err := r.db.Exec(ctx, query, medicine.Name, medicine.Quantity, medicine.Price, medicine.WholesalePrice, medicine.ExpiryDate, medicine.SupplierID, medicine.ID)
	if err != nil {
		return database.WrapError("update medicine", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("medicine", medicine.ID)
	}
	return nil
}

func (r *medicineRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM medicines WHERE medicine_id = $1`, id)
	if err != nil {
		return database.WrapError("delete medicine", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("medicine", id)
	}
	return nil
}

// Search lists medicines with supplier names, applying optional filters
func (r *medicineRepo) Search(ctx context.Context, filter *models.MedicineSearchFilter) ([]*models.Medicine, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	queryBase := `
		SELECT m.medicine_id, m.name, m.quantity, m.price, m.wholesale_price, m.expiry_date, m.supplier_id, s.name, m.created_at, m.updated_at
		FROM medicines m
		LEFT JOIN suppliers s ON m.supplier_id = s.supplier_id
		WHERE 1=1
	`
	args := []any{}
	conditionCount := 0

	if filter.Query != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND m.name ILIKE $%d`, conditionCount)
		args = append(args, "%"+filter.Query+"%")
	}
	if filter.SupplierID != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND m.supplier_id = $%d`, conditionCount)
		args = append(args, *filter.SupplierID)
	}
	if filter.MinQuantity != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND m.quantity >= $%d`, conditionCount)
		args = append(args, *filter.MinQuantity)
	}
	if filter.MaxQuantity != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND m.quantity <= $%d`, conditionCount)
		args = append(args, *filter.MaxQuantity)
	}
	if filter.ExpiringBefore != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND m.expiry_date <= $%d`, conditionCount)
		args = append(args, *filter.ExpiringBefore)
	}

	sortField := "m.name"
	switch filter.SortBy {
	case "quantity":
		sortField = "m.quantity"
	case "expiry_date":
		sortField = "m.expiry_date"
	}
	sortOrder := "ASC"
	if strings.ToLower(filter.SortOrder) == "desc" {
		sortOrder = "DESC"
	}
	queryBase += fmt.Sprintf(` ORDER BY %s %s`, sortField, sortOrder)

	conditionCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, filter.Limit)
	if filter.Offset > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` OFFSET $%d`, conditionCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, database.WrapError("search medicines", err)
	}
	defer rows.Close()

	return scanMedicineRows(rows)
}

func (r *medicineRepo) LowStock(ctx context.Context, threshold int) ([]*models.Medicine, error) {
	query := `
		SELECT m.medicine_id, m.name, m.quantity, m.price, m.wholesale_price, m.expiry_date, m.supplier_id, s.name, m.created_at, m.updated_at
		FROM medicines m
		LEFT JOIN suppliers s ON m.supplier_id = s.supplier_id
		WHERE m.quantity < $1
		ORDER BY m.quantity ASC
	`
	rows, err := r.db.Query(ctx, query, threshold)
	if err != nil {
		return nil, database.WrapError("select low stock medicines", err)
	}
	defer rows.Close()

	return scanMedicineRows(rows)
}

// ReserveStock decrements quantity-on-hand, gated so the row can never go
// negative. A zero-row update is disambiguated into not-found vs
// insufficient with a second lookup.
func (r *medicineRepo) ReserveStock(ctx context.Context, id int64, quantity int) error {
	query := `
		UPDATE medicines
		SET quantity = quantity - $2, updated_at = NOW()
		WHERE medicine_id = $1 AND quantity >= $2
	`
	tag, err := r.db.Exec(ctx, query, id, quantity)
	if err != nil {
		return database.WrapError("reserve stock", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM medicines WHERE medicine_id = $1)`, id).Scan(&exists); err != nil {
		return database.WrapError("check medicine exists", err)
	}
	if !exists {
		return common.NewNotFoundError("medicine", id)
	}
	return &common.InsufficientStockError{MedicineID: id, Requested: quantity}
}

// ReleaseStock restores quantity-on-hand. Never fails on business bounds;
// restores run during compensation and must not abort it.
func (r *medicineRepo) ReleaseStock(ctx context.Context, id int64, quantity int) error {
	query := `
		UPDATE medicines
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE medicine_id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, quantity)
	if err != nil {
		return database.WrapError("release stock", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("medicine", id)
	}
	return nil
}

func scanMedicineRows(rows pgx.Rows) ([]*models.Medicine, error) {
	var medicines []*models.Medicine
	for rows.Next() {
		medicine := &models.Medicine{}
		if err := rows.Scan(&medicine.ID, &medicine.Name, &medicine.Quantity, &medicine.Price, &medicine.WholesalePrice, &medicine.ExpiryDate, &medicine.SupplierID, &medicine.SupplierName, &medicine.CreatedAt, &medicine.UpdatedAt); err != nil {
			return nil, database.WrapError("scan medicine row", err)
		}
		medicines = append(medicines, medicine)
	}
	return medicines, database.WrapError("iterate medicine rows", rows.Err())
}
