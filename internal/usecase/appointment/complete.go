package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/salonflowpro/salon-api/internal/audit"
	domain "github.com/salonflowpro/salon-api/internal/domain/appointment"
	"github.com/salonflowpro/salon-api/internal/httperr"
	"github.com/salonflowpro/salon-api/internal/models"
	"github.com/salonflowpro/salon-api/internal/timezone"
	"github.com/salonflowpro/salon-api/internal/whatsapp"
)

type CompleteAppointmentInput struct {
	AppointmentID uint
	Method        domain.PaymentMethod
	UserID        *uint
}

type CompleteAppointmentOutput struct {
	Appointment *models.Appointment `json:"appointment"`
	Payment     *models.Payment     `json:"payment"`

	ReceiptURL string `json:"receipt_url"`
	// Link wa.me pré-preenchido; vazio quando o cliente não tem telefone válido.
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
}

type CompleteAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	tz      string
	baseURL string
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
	baseURL string,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:    repo,
		audit:   audit,
		tz:      tz,
		baseURL: baseURL,
	}
}

// Execute conclui o atendimento e registra o pagamento na mesma transação:
// valor igual ao total congelado, comissão calculada pelo percentual do
// atendente no momento da conclusão.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	in CompleteAppointmentInput,
) (*CompleteAppointmentOutput, error) {

	if !domain.IsValidPaymentMethod(in.Method) {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if ap.Payment != nil {
		return nil, httperr.ErrBusiness("already_paid")
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		AppointmentID:    ap.ID,
		Amount:           ap.TotalPrice,
		Method:           string(in.Method),
		CommissionAmount: domain.Commission(ap.TotalPrice, ap.Attendant.CommissionRate),
		ReceiptNumber:    uuid.NewString(),
	}

	attendant := ap.Attendant
	client := ap.Client
	ap.Payment = nil

	if err := uc.repo.CompleteWithPayment(ctx, ap, payment); err != nil {
		return nil, err
	}
	ap.Payment = payment
	ap.Attendant = attendant
	ap.Client = client

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"method": payment.Method,
			"amount": payment.Amount,
		},
	})

	receiptURL := whatsapp.ReceiptURL(uc.baseURL, ap.ID)

	out := &CompleteAppointmentOutput{
		Appointment: ap,
		Payment:     payment,
		ReceiptURL:  receiptURL,
	}

	// Telefone inválido não desfaz a conclusão; o link só não é oferecido.
	if link, err := whatsapp.ShareLink(client.Phone, client.Name, receiptURL); err == nil {
		out.WhatsAppLink = link
	}

	return out, nil
}
