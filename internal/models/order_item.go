package models

// OrderItem is a line of an order. UnitPrice is a snapshot taken when the
// line was added; rows are immutable once the owning order commits.
type OrderItem struct {
	OrderID      int64   `json:"order_id" db:"order_id"`
	MedicineID   int64   `json:"medicine_id" db:"medicine_id"`
	MedicineName string  `json:"medicine_name,omitempty" db:"medicine_name"`
	Quantity     int     `json:"quantity" db:"quantity"`
	UnitPrice    float64 `json:"unit_price" db:"unit_price"`
	Subtotal     float64 `json:"subtotal" db:"subtotal"`
}
