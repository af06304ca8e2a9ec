package models

import "time"

// PrescriptionSearchFilter holds search criteria for prescription queries
type PrescriptionSearchFilter struct {
	Query      string `json:"query,omitempty"`       // Customer or doctor name search
	CustomerID *int64 `json:"customer_id,omitempty"` // Customer filter
	Limit      int    `json:"limit,omitempty"`       // Page size (default: 50)
	Offset     int    `json:"offset,omitempty"`      // Page offset
}

type Prescription struct {
	ID            int64               `json:"id" db:"prescription_id"`
	CustomerID    int64               `json:"customer_id" db:"customer_id"`
	CustomerName  string              `json:"customer_name,omitempty" db:"customer_name"`
	DoctorName    string              `json:"doctor_name" db:"doctor_name"`
	DoctorLicense string              `json:"doctor_license" db:"doctor_license"`
	IssueDate     time.Time           `json:"issue_date" db:"issue_date"`
	ExpiryDate    *time.Time          `json:"expiry_date" db:"expiry_date"`
	Notes         *string             `json:"notes" db:"notes"`
	Items         []*PrescriptionItem `json:"items,omitempty"`
}
