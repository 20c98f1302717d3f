package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount_FormatosLocales(t *testing.T) {
	cases := map[string]string{
		"1.234,56": "1234.56",
		"1234.56":  "1234.56",
		" 15 ":     "15",
		"0,5":      "0.5",
	}
	for in, want := range cases {
		got, err := parseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}

	_, err := parseAmount("abc")
	assert.Error(t, err)
}

func TestParseRow(t *testing.T) {
	in, err := parseRow([]string{"mic-01", "Micrófono inalámbrico", "Electronics", "120,00", "250,00", "8", "3", "Sonido SA"})
	require.NoError(t, err)
	assert.Equal(t, "mic-01", in.SKU)
	assert.Equal(t, "electronics", in.Category)
	assert.Equal(t, "120", in.Cost.String())
	assert.Equal(t, 8, in.Quantity)
	require.NotNil(t, in.MinStock)
	assert.Equal(t, 3, *in.MinStock)

	in, err = parseRow([]string{"x", "Sin mínimo", "other", "1", "2", "0", "", ""})
	require.NoError(t, err)
	assert.Nil(t, in.MinStock, "sin stock mínimo se aplica el valor por defecto")

	_, err = parseRow([]string{"x", "Mala", "other", "1", "2", "dos", "", ""})
	assert.Error(t, err)
}
