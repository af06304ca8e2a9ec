package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/pkg/database"
)

type OrderRepository interface {
	WithTx(tx database.DBTX) OrderRepository
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, limit, offset int) ([]*models.Order, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*models.Order, error)
	Delete(ctx context.Context, id int64) error
	DeleteByCustomer(ctx context.Context, customerID int64) error
}

type orderRepo struct {
	db database.DBTX
}

func NewOrderRepo(db database.DBTX) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) WithTx(tx database.DBTX) OrderRepository {
	return &orderRepo{db: tx}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (customer_id, employee_id, order_type, total_amount, order_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING order_id
	`
	err := r.db.QueryRow(ctx, query, order.CustomerID, order.EmployeeID, order.OrderType, order.TotalAmount, order.OrderDate).Scan(&order.ID)
	return database.WrapError("insert order", err)
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT order_id, customer_id, employee_id, order_type, total_amount, order_date
		FROM orders
		WHERE order_id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.CustomerID, &order.EmployeeID, &order.OrderType, &order.TotalAmount, &order.OrderDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewNotFoundError("order", id)
	}
	if err != nil {
		return nil, database.WrapError("select order", err)
	}
	return order, nil
}

func (r *orderRepo) List(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT order_id, customer_id, employee_id, order_type, total_amount, order_date
		FROM orders
		ORDER BY order_date DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, database.WrapError("list orders", err)
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT order_id, customer_id, employee_id, order_type, total_amount, order_date
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, database.WrapError("list orders by customer", err)
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

func (r *orderRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE order_id = $1`, id)
	if err != nil {
		return database.WrapError("delete order", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("order", id)
	}
	return nil
}

func (r *orderRepo) DeleteByCustomer(ctx context.Context, customerID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM orders WHERE customer_id = $1`, customerID)
	return database.WrapError("delete orders by customer", err)
}

func scanOrderRows(rows pgx.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.EmployeeID, &order.OrderType, &order.TotalAmount, &order.OrderDate); err != nil {
			return nil, database.WrapError("scan order row", err)
		}
		orders = append(orders, order)
	}
	return orders, database.WrapError("iterate order rows", rows.Err())
}
