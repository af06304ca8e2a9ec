package repositories

import (
	"context"

	"pharmacore/internal/models"
	"pharmacore/pkg/database"
)

type PaymentRepository interface {
	WithTx(tx database.DBTX) PaymentRepository
	Insert(ctx context.Context, payment *models.Payment) error
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*models.Payment, error)
	DeleteByCustomer(ctx context.Context, customerID int64) error
}

type paymentRepo struct {
	db database.DBTX
}

func NewPaymentRepo(db database.DBTX) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) WithTx(tx database.DBTX) PaymentRepository {
	return &paymentRepo{db: tx}
}

func (r *paymentRepo) Insert(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (customer_id, order_id, amount, method, paid_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING payment_id
	`
	err := r.db.QueryRow(ctx, query, payment.CustomerID, payment.OrderID, payment.Amount, payment.Method, payment.PaidAt).Scan(&payment.ID)
	return database.WrapError("insert payment", err)
}

func (r *paymentRepo) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*models.Payment, error) {
	query := `
		SELECT payment_id, customer_id, order_id, amount, method, paid_at
		FROM payments
		WHERE customer_id = $1
		ORDER BY paid_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, database.WrapError("list payments by customer", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.CustomerID, &payment.OrderID, &payment.Amount, &payment.Method, &payment.PaidAt); err != nil {
			return nil, database.WrapError("scan payment row", err)
		}
		payments = append(payments, payment)
	}
	return payments, database.WrapError("iterate payment rows", rows.Err())
}

func (r *paymentRepo) DeleteByCustomer(ctx context.Context, customerID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM payments WHERE customer_id = $1`, customerID)
	return database.WrapError("delete payments by customer", err)
}
