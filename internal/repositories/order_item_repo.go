package repositories

import (
	"context"

	"pharmacore/internal/models"
	"pharmacore/pkg/database"
)

type OrderItemRepository interface {
	WithTx(tx database.DBTX) OrderItemRepository
	Insert(ctx context.Context, item *models.OrderItem) error
	ListByOrder(ctx context.Context, orderID int64) ([]*models.OrderItem, error)
	DeleteByOrder(ctx context.Context, orderID int64) error
	DeleteByMedicine(ctx context.Context, medicineID int64) error
	DeleteByCustomer(ctx context.Context, customerID int64) error
}

type orderItemRepo struct {
	db database.DBTX
}

func NewOrderItemRepo(db database.DBTX) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) WithTx(tx database.DBTX) OrderItemRepository {
	return &orderItemRepo{db: tx}
}

func (r *orderItemRepo) Insert(ctx context.Context, item *models.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, medicine_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, item.OrderID, item.MedicineID, item.Quantity, item.UnitPrice, item.Subtotal)
	return database.WrapError("insert order item", err)
}

func (r *orderItemRepo) ListByOrder(ctx context.Context, orderID int64) ([]*models.OrderItem, error) {
	query := `
		SELECT oi.order_id, oi.medicine_id, m.name, oi.quantity, oi.unit_price, oi.subtotal
		FROM order_items oi
		JOIN medicines m ON m.medicine_id = oi.medicine_id
		WHERE oi.order_id = $1
		ORDER BY m.name
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, database.WrapError("list order items", err)
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.OrderID, &item.MedicineID, &item.MedicineName, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, database.WrapError("scan order item row", err)
		}
		items = append(items, item)
	}
	return items, database.WrapError("iterate order item rows", rows.Err())
}

func (r *orderItemRepo) DeleteByOrder(ctx context.Context, orderID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID)
	return database.WrapError("delete order items by order", err)
}

func (r *orderItemRepo) DeleteByMedicine(ctx context.Context, medicineID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM order_items WHERE medicine_id = $1`, medicineID)
	return database.WrapError("delete order items by medicine", err)
}

func (r *orderItemRepo) DeleteByCustomer(ctx context.Context, customerID int64) error {
	query := `
		DELETE FROM order_items
		WHERE order_id IN (SELECT order_id FROM orders WHERE customer_id = $1)
	`
	_, err := r.db.Exec(ctx, query, customerID)
	return database.WrapError("delete order items by customer", err)
}
