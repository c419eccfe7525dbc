package models

import "time"

// Payment is a submitted proof of payment. Rows are written once and never updated.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	PhoneNumber   string    `gorm:"not null" json:"phone_number"`
	PaymentMethod string    `gorm:"not null" json:"payment_method"`
	Reason        string    `gorm:"not null" json:"reason"`
	ProofURL      string    `gorm:"not null" json:"proof_url"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}
