package shipping_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/matwana/logistics-api/internal/domain/shipping"
)

// Costo = tarifa × peso, con aritmética decimal exacta.
func TestQuote_CostoExacto(t *testing.T) {
	cases := []struct {
		name      string
		costPerKg string
		weight    string
		want      string
	}{
		{"tarifa Nairobi-Mombasa por 4 kg", "50", "4", "200"},
		{"peso fraccionario", "50", "2.5", "125"},
		{"tarifa con centavos", "12.75", "3", "38.25"},
		{"sin redondeo binario", "0.1", "3", "0.3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := shipping.Quote(
				decimal.RequireFromString(tc.costPerKg),
				decimal.RequireFromString(tc.weight),
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"Quote(%s, %s) = %s, se esperaba %s", tc.costPerKg, tc.weight, got, tc.want)
		})
	}
}

// Mismo insumo, mismo resultado: el cálculo es determinista.
func TestQuote_Idempotente(t *testing.T) {
	rate := decimal.RequireFromString("37.5")
	weight := decimal.RequireFromString("8.2")

	first := shipping.Quote(rate, weight)
	second := shipping.Quote(rate, weight)
	assert.True(t, first.Equal(second))
}

func TestCanonicalPlace_InsensibleAMayusculas(t *testing.T) {
	assert.Equal(t, "Nairobi", shipping.CanonicalPlace("nairobi"))
	assert.Equal(t, "Nairobi", shipping.CanonicalPlace("NAIROBI"))
	assert.Equal(t, "Nairobi", shipping.CanonicalPlace("  Nairobi  "))
	assert.Equal(t, shipping.CanonicalPlace("mombasa"), shipping.CanonicalPlace("MoMbAsA"))
}
