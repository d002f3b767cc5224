package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnDate(t *testing.T) {
	rd, err := ReturnDate("2024-01-01", 15)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16", rd)

	// virada de mês e de ano
	rd, err = ReturnDate("2024-12-20", 30)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-19", rd)

	// fevereiro em ano bissexto
	rd, err = ReturnDate("2024-02-25", 7)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-03", rd)
}

func TestReturnDateRejectsUnknownInterval(t *testing.T) {
	_, err := ReturnDate("2024-01-01", 10)
	assert.Error(t, err)

	_, err = ReturnDate("2024-01-01", 0)
	assert.Error(t, err)

	_, err = ReturnDate("2024-01-01", -7)
	assert.Error(t, err)
}

func TestReturnDateRejectsBadDate(t *testing.T) {
	_, err := ReturnDate("01/01/2024", 7)
	assert.Error(t, err)
}

func TestReturnNote(t *testing.T) {
	assert.Equal(t, "Retorno automático de 15 dias", ReturnNote(15))
}

func TestCommission(t *testing.T) {
	assert.Equal(t, 20.0, Commission(100, 20))
	assert.Equal(t, 0.0, Commission(100, 0))
	assert.Equal(t, 0.0, Commission(100, -5))
	assert.InDelta(t, 12.5, Commission(50, 25), 1e-9)
}
