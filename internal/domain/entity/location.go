package entity

import "github.com/shopspring/decimal"

// Location es una fila de la tabla de tarifas: costo por kg entre un origen
// y un destino. También puede referenciarse como posición actual de un vehículo.
// La pareja (origin, destination) es única.
type Location struct {
	ID          int64
	Origin      string
	Destination string
	CostPerKg   decimal.Decimal // > 0
}
