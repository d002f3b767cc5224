package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	AttendantID uint      `json:"attendant_id"`
	Attendant   Attendant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"attendant"`

	// Data e horário locais do salão ("2006-01-02" / "15:04").
	Date      string `gorm:"size:10;index" json:"date"`
	StartTime string `gorm:"size:5" json:"start_time"`
	// Término opcional. O fluxo de marcação registra só o início;
	// a coluna existe para agendas que informem o horário final.
	EndTime string `gorm:"size:5" json:"end_time,omitempty"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	// Snapshot do preço total no momento da marcação. Nunca recalculado.
	TotalPrice float64 `json:"total_price"`

	Notes      string  `gorm:"size:255" json:"notes"`
	ReturnDate *string `gorm:"size:10" json:"return_date"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID" json:"appointment_services"`
	Payment  *Payment             `gorm:"foreignKey:AppointmentID" json:"payment,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService registra um serviço do atendimento com o preço
// vigente na hora da marcação, isolando o histórico de mudanças de tabela.
type AppointmentService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index" json:"appointment_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Price float64 `json:"price"`
}
