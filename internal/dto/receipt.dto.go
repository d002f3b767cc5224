package dto

import "time"

type ReceiptItemDTO struct {
	ServiceName string  `json:"service_name"`
	Price       float64 `json:"price"`
}

type ReceiptPaymentDTO struct {
	Method        string    `json:"method"`
	Amount        float64   `json:"amount"`
	ReceiptNumber string    `json:"receipt_number"`
	PaidAt        time.Time `json:"paid_at"`
}

// ReceiptDTO é a visão pública do comprovante: apenas o que o cliente vê,
// com os preços congelados na marcação.
type ReceiptDTO struct {
	AppointmentID uint   `json:"appointment_id"`
	ClientName    string `json:"client_name"`
	AttendantName string `json:"attendant_name"`

	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	Status    string `json:"status"`

	Items      []ReceiptItemDTO   `json:"items"`
	TotalPrice float64            `json:"total_price"`
	Payment    *ReceiptPaymentDTO `json:"payment,omitempty"`
}
