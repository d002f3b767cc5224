package models

import "time"

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"uniqueIndex" json:"appointment_id"`

	Amount           float64 `json:"amount"`
	Method           string  `gorm:"size:20" json:"method"`
	CommissionAmount float64 `json:"commission_amount"`

	ReceiptNumber string `gorm:"size:40" json:"receipt_number"`

	CreatedAt time.Time `json:"created_at"`
}
