package dto

import "github.com/shopspring/decimal"

// CreateLocationRequest entrada para una fila de tarifa (solo admin la usa en la práctica).
type CreateLocationRequest struct {
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	CostPerKg   decimal.Decimal `json:"cost_per_kg"`
}

// LocationResponse proyección de una fila de tarifa.
type LocationResponse struct {
	ID          int64           `json:"id"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	CostPerKg   decimal.Decimal `json:"cost_per_kg"`
}
