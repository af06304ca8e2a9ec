package models

import "time"

// MedicineSearchFilter holds search and filter criteria for medicine queries
type MedicineSearchFilter struct {
	Query          string     `json:"query,omitempty"`           // Name search (ILIKE)
	SupplierID     *int64     `json:"supplier_id,omitempty"`     // Supplier filter
	MaxQuantity    *int       `json:"max_quantity,omitempty"`    // Maximum quantity on hand
	MinQuantity    *int       `json:"min_quantity,omitempty"`    // Minimum quantity on hand
	ExpiringBefore *time.Time `json:"expiring_before,omitempty"` // Expiry date cutoff
	SortBy         string     `json:"sort_by,omitempty"`         // Sort field: name, quantity, expiry_date
	SortOrder      string     `json:"sort_order,omitempty"`      // Sort order: asc, desc
	Limit          int        `json:"limit,omitempty"`           // Page size (default: 50)
	Offset         int        `json:"offset,omitempty"`          // Page offset
}

type Medicine struct {
	ID             int64      `json:"id" db:"medicine_id"`
	Name           string     `json:"name" db:"name"`
	Quantity       int        `json:"quantity" db:"quantity"`
	Price          float64    `json:"price" db:"price"`
	WholesalePrice float64    `json:"wholesale_price" db:"wholesale_price"`
	ExpiryDate     time.Time  `json:"expiry_date" db:"expiry_date"`
	SupplierID     *int64     `json:"supplier_id" db:"supplier_id"`
	SupplierName   *string    `json:"supplier_name,omitempty" db:"supplier_name"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
