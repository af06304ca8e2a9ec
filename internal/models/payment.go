package models

import "time"

type Payment struct {
	ID         int64     `json:"id" db:"payment_id"`
	CustomerID int64     `json:"customer_id" db:"customer_id"`
	OrderID    *int64    `json:"order_id" db:"order_id"`
	Amount     float64   `json:"amount" db:"amount"`
	Method     string    `json:"method" db:"method"`
	PaidAt     time.Time `json:"paid_at" db:"paid_at"`
}
