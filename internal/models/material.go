package models

import "time"

// Material de consumo do salão (estoque simples).
type Material struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Cost            float64 `json:"cost"`
	CurrentQuantity float64 `json:"current_quantity"`
	MinQuantity     float64 `json:"min_quantity"`
	Supplier        string  `gorm:"size:100" json:"supplier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
