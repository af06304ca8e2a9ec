package repositories

import (
	"context"

	"pharmacore/internal/models"
	"pharmacore/pkg/database"
)

type SaleRepository interface {
	WithTx(tx database.DBTX) SaleRepository
	Insert(ctx context.Context, sale *models.Sale) error
	DeleteByCustomer(ctx context.Context, customerID int64) error
}

type saleRepo struct {
	db database.DBTX
}

func NewSaleRepo(db database.DBTX) SaleRepository {
	return &saleRepo{db: db}
}

func (r *saleRepo) WithTx(tx database.DBTX) SaleRepository {
	return &saleRepo{db: tx}
}

func (r *saleRepo) Insert(ctx context.Context, sale *models.Sale) error {
	query := `
		INSERT INTO sales (medicine_id, customer_id, employee_id, quantity, total_price, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING sale_id
	`
	err := r.db.QueryRow(ctx, query, sale.MedicineID, sale.CustomerID, sale.EmployeeID, sale.Quantity, sale.TotalPrice, sale.SaleDate).Scan(&sale.ID)
	return database.WrapError("insert sale", err)
}

func (r *saleRepo) DeleteByCustomer(ctx context.Context, customerID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sales WHERE customer_id = $1`, customerID)
	return database.WrapError("delete sales by customer", err)
}
