package models

import "time"

type Customer struct {
	ID            int64     `json:"id" db:"customer_id"`
	Name          string    `json:"name" db:"name"`
	Phone         *string   `json:"phone" db:"phone"`
	LoyaltyPoints int       `json:"loyalty_points" db:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
