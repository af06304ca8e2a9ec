package models

import "time"

// Order types accepted by the order workflow.
const (
	OrderTypeRetail    = "retail"
	OrderTypeWholesale = "wholesale"
	OrderTypeOnline    = "online"
)

type Order struct {
	ID          int64        `json:"id" db:"order_id"`
	CustomerID  int64        `json:"customer_id" db:"customer_id"`
	EmployeeID  int64        `json:"employee_id" db:"employee_id"`
	OrderType   string       `json:"order_type" db:"order_type"`
	TotalAmount float64      `json:"total_amount" db:"total_amount"`
	OrderDate   time.Time    `json:"order_date" db:"order_date"`
	Items       []*OrderItem `json:"items,omitempty"`
}
