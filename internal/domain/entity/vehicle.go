package entity

import "github.com/shopspring/decimal"

// VehicleStatusEmpty estado inicial de un vehículo sin carga.
const VehicleStatusEmpty = "empty"

// Vehicle representa un vehículo de la flota. Los horarios se guardan como
// texto libre (p. ej. "08:00", "mañana temprano").
type Vehicle struct {
	ID                  int64
	NumberPlate         string // único
	Capacity            decimal.Decimal
	DriverName          string
	DriverPhone         string
	DepartureTime       string
	ExpectedArrivalTime string
	Status              string // default "empty"
	LocationID          *int64 // posición actual (opcional)
}
