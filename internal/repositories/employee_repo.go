package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/pkg/database"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	GetByUsername(ctx context.Context, username string) (*models.Employee, error)
	List(ctx context.Context, limit, offset int) ([]*models.Employee, error)
}

type employeeRepo struct {
	db database.DBTX
}

func NewEmployeeRepo(db database.DBTX) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	query := `
		INSERT INTO employees (name, username, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING employee_id
	`
	err := r.db.QueryRow(ctx, query, employee.Name, employee.Username, employee.PasswordHash).Scan(&employee.ID)
	return database.WrapError("insert employee", err)
}

func (r *employeeRepo) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	employee := &models.Employee{}
	query := `
		SELECT employee_id, name, username, password_hash, created_at
		FROM employees
		WHERE employee_id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&employee.ID, &employee.Name, &employee.Username, &employee.PasswordHash, &employee.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewNotFoundError("employee", id)
	}
	if err != nil {
		return nil, database.WrapError("select employee", err)
	}
	return employee, nil
}

func (r *employeeRepo) GetByUsername(ctx context.Context, username string) (*models.Employee, error) {
	employee := &models.Employee{}
	query := `
		SELECT employee_id, name, username, password_hash, created_at
		FROM employees
		WHERE username = $1
	`
	err := r.db.QueryRow(ctx, query, username).Scan(&employee.ID, &employee.Name, &employee.Username, &employee.PasswordHash, &employee.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.WrapError("select employee by username", err)
	}
	return employee, nil
}

func (r *employeeRepo) List(ctx context.Context, limit, offset int) ([]*models.Employee, error) {
	query := `
		SELECT employee_id, name, username, password_hash, created_at
		FROM employees
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, database.WrapError("list employees", err)
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee := &models.Employee{}
		if err := rows.Scan(&employee.ID, &employee.Name, &employee.Username, &employee.PasswordHash, &employee.CreatedAt); err != nil {
			return nil, database.WrapError("scan employee row", err)
		}
		employees = append(employees, employee)
	}
	return employees, database.WrapError("iterate employee rows", rows.Err())
}
