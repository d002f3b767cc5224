package whatsapp

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonflowpro/salon-api/internal/httperr"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"celular com DDD", "11988887777", "5511988887777"},
		{"formatado", "(11) 98888-7777", "5511988887777"},
		{"já com país", "5511988887777", "5511988887777"},
		{"fixo com DDD", "1133334444", "551133334444"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePhoneRejectsShortNumbers(t *testing.T) {
	for _, raw := range []string{"", "988887777", "abc-def"} {
		_, err := NormalizePhone(raw)
		assert.True(t, httperr.IsBusiness(err, "invalid_phone"), "raw=%q", raw)
	}
}

func TestReceiptURL(t *testing.T) {
	assert.Equal(t,
		"https://salon.example.com/comprovante/42",
		ReceiptURL("https://salon.example.com", 42),
	)
	// barra final não duplica
	assert.Equal(t,
		"https://salon.example.com/comprovante/42",
		ReceiptURL("https://salon.example.com/", 42),
	)
}

func TestShareLink(t *testing.T) {
	link, err := ShareLink("(11) 98888-7777", "Maria", "https://salon.example.com/comprovante/42")
	require.NoError(t, err)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/5511988887777", parsed.Path)

	text := parsed.Query().Get("text")
	assert.Contains(t, text, "Maria")
	assert.Contains(t, text, "https://salon.example.com/comprovante/42")
}

func TestShareLinkInvalidPhone(t *testing.T) {
	_, err := ShareLink("123", "Maria", "https://salon.example.com/comprovante/42")
	assert.True(t, httperr.IsBusiness(err, "invalid_phone"))
}
