package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/salonflowpro/salon-api/internal/httperr"
)

const countryPrefix = "55"

// NormalizePhone reduz o telefone a dígitos e garante o prefixo do país.
// Números com menos de 10 dígitos não servem para o WhatsApp.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < 10 {
		return "", httperr.ErrBusiness("invalid_phone")
	}

	if !strings.HasPrefix(digits, countryPrefix) {
		digits = countryPrefix + digits
	}

	return digits, nil
}

// ReceiptURL monta o endereço público do comprovante.
func ReceiptURL(baseURL string, appointmentID uint) string {
	return fmt.Sprintf("%s/comprovante/%d", strings.TrimRight(baseURL, "/"), appointmentID)
}

// ShareLink gera o deep link wa.me com a mensagem do comprovante.
// O envio em si acontece no aparelho do usuário; não há confirmação de entrega.
func ShareLink(rawPhone, clientName, receiptURL string) (string, error) {
	phone, err := NormalizePhone(rawPhone)
	if err != nil {
		return "", err
	}

	message := fmt.Sprintf(
		"*Olá, %s!*\n\nSeu atendimento no *SalonFlow Pro* foi concluído.\n\n"+
			"📄 *Acesse seu comprovante digital aqui:*\n%s\n\nAgradecemos a preferência!",
		clientName,
		receiptURL,
	)

	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message), nil
}
