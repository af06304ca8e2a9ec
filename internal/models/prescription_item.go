package models

type PrescriptionItem struct {
	PrescriptionID int64  `json:"prescription_id" db:"prescription_id"`
	MedicineID     int64  `json:"medicine_id" db:"medicine_id"`
	MedicineName   string `json:"medicine_name,omitempty" db:"medicine_name"`
	Quantity       int    `json:"quantity" db:"quantity"`
	Dosage         string `json:"dosage" db:"dosage"`
	Instructions   string `json:"instructions" db:"instructions"`
}
