package dto

import "github.com/shopspring/decimal"

// CreateVehicleRequest entrada para registrar un vehículo.
type CreateVehicleRequest struct {
	NumberPlate         string          `json:"number_plate"`
	Capacity            decimal.Decimal `json:"capacity"`
	DriverName          string          `json:"driver_name"`
	DriverPhone         string          `json:"driver_phone"`
	DepartureTime       string          `json:"departure_time"`
	ExpectedArrivalTime string          `json:"expected_arrival_time"`
	Status              string          `json:"status"` // default "empty"
	LocationID          *int64          `json:"location_id"`
}

// VehicleResponse proyección de un vehículo.
type VehicleResponse struct {
	ID                  int64           `json:"id"`
	NumberPlate         string          `json:"number_plate"`
	Capacity            decimal.Decimal `json:"capacity"`
	DriverName          string          `json:"driver_name"`
	DriverPhone         string          `json:"driver_phone"`
	DepartureTime       string          `json:"departure_time,omitempty"`
	ExpectedArrivalTime string          `json:"expected_arrival_time,omitempty"`
	Status              string          `json:"status"`
	LocationID          *int64          `json:"location_id,omitempty"`
}
