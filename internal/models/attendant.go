package models

import "time"

// WorkHours é o intervalo de expediente do atendente ("15:04").
type WorkHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Attendant struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name           string  `gorm:"size:100;not null" json:"name"`
	Specialty      string  `gorm:"size:100" json:"specialty"`
	Phone          string  `gorm:"size:20" json:"phone"`
	CommissionRate float64 `json:"commission_rate"`
	Color          string  `gorm:"size:20;default:'#8b5cf6'" json:"color"`
	AvatarURL      string  `gorm:"size:255" json:"avatar_url"`

	// Dias de trabalho como inteiros de weekday (0 = domingo).
	WorkDays  []int      `gorm:"serializer:json" json:"work_days"`
	WorkHours *WorkHours `gorm:"serializer:json" json:"work_hours"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
