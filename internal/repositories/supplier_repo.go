package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/pkg/database"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id int64) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*models.Supplier, error)
}

type supplierRepo struct {
	db database.DBTX
}

func NewSupplierRepo(db database.DBTX) SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (name, contact_info)
		VALUES ($1, $2)
		RETURNING supplier_id
	`
	err := r.db.QueryRow(ctx, query, supplier.Name, supplier.ContactInfo).Scan(&supplier.ID)
	return database.WrapError("insert supplier", err)
}

func (r *supplierRepo) GetByID(ctx context.Context, id int64) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `SELECT supplier_id, name, contact_info FROM suppliers WHERE supplier_id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&supplier.ID, &supplier.Name, &supplier.ContactInfo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewNotFoundError("supplier", id)
	}
	if err != nil {
		return nil, database.WrapError("select supplier", err)
	}
	return supplier, nil
}

func (r *supplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	query := `UPDATE suppliers SET name = $1, contact_info = $2 WHERE supplier_id = $3`
	tag, err := r.db.Exec(ctx, query, supplier.Name, supplier.ContactInfo, supplier.ID)
	if err != nil {
		return database.WrapError("update supplier", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("supplier", supplier.ID)
	}
	return nil
}

func (r *supplierRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE supplier_id = $1`, id)
	if err != nil {
		return database.WrapError("delete supplier", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("supplier", id)
	}
	return nil
}

func (r *supplierRepo) List(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	query := `SELECT supplier_id, name, contact_info FROM suppliers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, database.WrapError("list suppliers", err)
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		supplier := &models.Supplier{}
		if err := rows.Scan(&supplier.ID, &supplier.Name, &supplier.ContactInfo); err != nil {
			return nil, database.WrapError("scan supplier row", err)
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, database.WrapError("iterate supplier rows", rows.Err())
}
