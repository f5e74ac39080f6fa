package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de un Parcel.
const (
	ParcelPending   = "pending"
	ParcelInTransit = "in_transit"
	ParcelDelivered = "delivered"
)

// IsValidParcelStatus valida el enum de estado de paquete.
func IsValidParcelStatus(s string) bool {
	return s == ParcelPending || s == ParcelInTransit || s == ParcelDelivered
}

// Parcel representa un paquete. El costo de envío es derivado
// (tarifa de la ruta × peso) y queda nulo hasta calcularse.
// Sender y Recipient son inmutables después de la creación.
type Parcel struct {
	ID             int64
	Description    string
	TrackingNumber string // único, provisto por el cliente o generado
	Weight         decimal.Decimal
	Status         string // pending, in_transit, delivered
	ShippingCost   decimal.NullDecimal
	SenderID       int64
	RecipientID    int64
	VehicleID      *int64
	LocationID     *int64 // fila de tarifa (origen, destino) que fijó el costo
	CreatedAt      time.Time
}
