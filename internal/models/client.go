package models

import "time"

// Cliente do salão, sem login próprio.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Phone     string `gorm:"size:20" json:"phone"`
	Email     string `gorm:"size:100" json:"email"`
	CpfCnpj   string `gorm:"size:20" json:"cpf_cnpj"`
	BirthDate string `gorm:"size:10" json:"birth_date"`
	Address   string `gorm:"size:255" json:"address"`
	Notes     string `gorm:"size:255" json:"notes"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
