// Package shipping implementa el cálculo de costo de envío (servicio de dominio).
// Costo = cost_per_kg(origen, destino) × peso. El cálculo es determinista e
// idempotente: con los mismos insumos produce siempre el mismo valor.
package shipping

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Quote calcula el costo de envío exacto para una tarifa y un peso.
func Quote(costPerKg, weight decimal.Decimal) decimal.Decimal {
	return costPerKg.Mul(weight)
}

// CanonicalPlace normaliza un nombre de lugar para que la búsqueda de tarifa
// sea insensible a mayúsculas: "nairobi" y "NAIROBI" resuelven la misma fila.
// El Caser es stateful, se crea por llamada.
func CanonicalPlace(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}
