package models

import "time"

// Sale is the flat per-line sales record written at order commit. The
// reporting queries aggregate over this table rather than joining order
// headers back to their lines.
type Sale struct {
	ID         int64     `json:"id" db:"sale_id"`
	MedicineID int64     `json:"medicine_id" db:"medicine_id"`
	CustomerID int64     `json:"customer_id" db:"customer_id"`
	EmployeeID int64     `json:"employee_id" db:"employee_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	TotalPrice float64   `json:"total_price" db:"total_price"`
	SaleDate   time.Time `json:"sale_date" db:"sale_date"`
}
