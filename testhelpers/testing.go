package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pharmacore/internal/models"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB creates a pooled connection for testing
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			connString = "host=localhost port=5432 user=postgres password=postgres dbname=pharmacore_test sslmode=disable"
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SeedMedicine inserts a medicine row and returns its id
func SeedMedicine(t *testing.T, db *TestDB, name string, quantity int, price float64) int64 {
	t.Helper()

	var id int64
	query := `
		INSERT INTO medicines (name, quantity, price, wholesale_price, expiry_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING medicine_id
	`
	expiry := time.Now().AddDate(1, 0, 0)
	err := db.Pool.QueryRow(context.Background(), query, name, quantity, price, price*0.8, expiry).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed medicine: %v", err)
	}
	return id
}

// SeedCustomer inserts a customer row and returns its id
func SeedCustomer(t *testing.T, db *TestDB, name string) int64 {
	t.Helper()

	var id int64
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO customers (name) VALUES ($1) RETURNING customer_id`, name).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}
	return id
}

// SeedEmployee inserts an employee row and returns its id
func SeedEmployee(t *testing.T, db *TestDB, name, username string) int64 {
	t.Helper()

	var id int64
	query := `
		INSERT INTO employees (name, username, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET name = EXCLUDED.name
		RETURNING employee_id
	`
	err := db.Pool.QueryRow(context.Background(), query, name, username, "x").Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed employee: %v", err)
	}
	return id
}

// MedicineQuantity reads the current on-hand quantity for assertions
func MedicineQuantity(t *testing.T, db *TestDB, id int64) int {
	t.Helper()

	var quantity int
	err := db.Pool.QueryRow(context.Background(),
		`SELECT quantity FROM medicines WHERE medicine_id = $1`, id).Scan(&quantity)
	if err != nil {
		t.Fatalf("Failed to read medicine quantity: %v", err)
	}
	return quantity
}

// CleanupTables truncates the given tables between tests
func CleanupTables(t *testing.T, db *TestDB, tables ...string) {
	t.Helper()

	for _, table := range tables {
		if _, err := db.Pool.Exec(context.Background(), "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			t.Fatalf("Failed to truncate %s: %v", table, err)
		}
	}
}

// NewTestMedicine builds an in-memory medicine for service tests
func NewTestMedicine(id int64, name string, quantity int, price float64) *models.Medicine {
	return &models.Medicine{
		ID:             id,
		Name:           name,
		Quantity:       quantity,
		Price:          price,
		WholesalePrice: price * 0.8,
		ExpiryDate:     time.Now().AddDate(1, 0, 0),
	}
}
