package appointment

import (
	"fmt"
	"time"

	"github.com/salonflowpro/salon-api/internal/httperr"
)

const DateLayout = "2006-01-02"

// Intervalos aceitos para retorno automático, em dias corridos.
var returnIntervals = map[int]bool{
	7:  true,
	15: true,
	20: true,
	25: true,
	30: true,
}

func IsValidReturnInterval(days int) bool {
	return returnIntervals[days]
}

// ReturnDate calcula a data do retorno somando dias corridos à data original.
func ReturnDate(date string, days int) (string, error) {
	if !IsValidReturnInterval(days) {
		return "", httperr.ErrBusiness("invalid_return_interval")
	}

	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_date")
	}

	return d.AddDate(0, 0, days).Format(DateLayout), nil
}

// ReturnNote identifica o agendamento gerado automaticamente.
func ReturnNote(days int) string {
	return fmt.Sprintf("Retorno automático de %d dias", days)
}

// Commission aplica o percentual do atendente sobre o valor pago.
func Commission(amount, rate float64) float64 {
	if rate <= 0 {
		return 0
	}
	return amount * rate / 100
}
