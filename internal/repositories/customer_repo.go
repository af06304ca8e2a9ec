package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/pkg/database"
)

type CustomerRepository interface {
	WithTx(tx database.DBTX) CustomerRepository
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, search string, limit, offset int) ([]*models.Customer, error)
	AddLoyaltyPoints(ctx context.Context, id int64, points int) error
}

type customerRepo struct {
	db database.DBTX
}

func NewCustomerRepo(db database.DBTX) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) WithTx(tx database.DBTX) CustomerRepository {
	return &customerRepo{db: tx}
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (name, phone, loyalty_points, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING customer_id
	`
	err := r.db.QueryRow(ctx, query, customer.Name, customer.Phone, customer.LoyaltyPoints).Scan(&customer.ID)
	return database.WrapError("insert customer", err)
}

func (r *customerRepo) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		SELECT customer_id, name, phone, loyalty_points, created_at
		FROM customers
		WHERE customer_id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.LoyaltyPoints, &customer.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewNotFoundError("customer", id)
	}
	if err != nil {
		return nil, database.WrapError("select customer", err)
	}
	return customer, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, phone = $2
		WHERE customer_id = $3
	`
	tag, err := r.db.Exec(ctx, query, customer.Name, customer.Phone, customer.ID)
	if err != nil {
		return database.WrapError("update customer", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("customer", customer.ID)
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, id)
	if err != nil {
		return database.WrapError("delete customer", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("customer", id)
	}
	return nil
}

func (r *customerRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.Customer, error) {
	query := `
		SELECT customer_id, name, phone, loyalty_points, created_at
		FROM customers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, database.WrapError("list customers", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.LoyaltyPoints, &customer.CreatedAt); err != nil {
			return nil, database.WrapError("scan customer row", err)
		}
		customers = append(customers, customer)
	}
	return customers, database.WrapError("iterate customer rows", rows.Err())
}

// AddLoyaltyPoints adjusts the customer's balance by points, which may be
// negative for redemptions but never below zero in the row.
func (r *customerRepo) AddLoyaltyPoints(ctx context.Context, id int64, points int) error {
	query := `
		UPDATE customers
		SET loyalty_points = GREATEST(loyalty_points + $2, 0)
		WHERE customer_id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, points)
	if err != nil {
		return database.WrapError("add loyalty points", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("customer", id)
	}
	return nil
}
