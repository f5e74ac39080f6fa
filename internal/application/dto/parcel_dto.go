package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateParcelRequest entrada para crear un paquete. El costo de envío NO se
// acepta del cliente: se deriva de la tarifa (origin, destination) × weight.
// El usuario actuante (staff) sale del token, no del cuerpo.
type CreateParcelRequest struct {
	Description    string          `json:"description"`
	TrackingNumber string          `json:"tracking_number"` // opcional: se genera si falta
	Weight         decimal.Decimal `json:"weight"`
	Origin         string          `json:"origin"`
	Destination    string          `json:"destination"`
	SenderID       int64           `json:"sender_id"`
	RecipientID    int64           `json:"recipient_id"`
	VehicleID      *int64          `json:"vehicle_id"`
}

// ParcelResponse proyección de un paquete. Sustituye la serialización del
// grafo completo de relaciones: solo ids y los nombres de sender/recipient.
type ParcelResponse struct {
	ID             int64               `json:"id"`
	Description    string              `json:"description"`
	TrackingNumber string              `json:"tracking_number"`
	Weight         decimal.Decimal     `json:"weight"`
	Status         string              `json:"status"`
	ShippingCost   decimal.NullDecimal `json:"shipping_cost"`
	Origin         string              `json:"origin,omitempty"`
	Destination    string              `json:"destination,omitempty"`
	SenderID       int64               `json:"sender_id"`
	SenderName     string              `json:"sender_name,omitempty"`
	RecipientID    int64               `json:"recipient_id"`
	RecipientName  string              `json:"recipient_name,omitempty"`
	VehicleID      *int64              `json:"vehicle_id,omitempty"`
	LocationID     *int64              `json:"location_id,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}
