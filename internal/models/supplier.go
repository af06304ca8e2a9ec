package models

type Supplier struct {
	ID          int64   `json:"id" db:"supplier_id"`
	Name        string  `json:"name" db:"name"`
	ContactInfo *string `json:"contact_info" db:"contact_info"`
}
