package usecase

import (
	"context"

	"github.com/matwana/logistics-api/internal/domain/entity"
)

// LabelPDFGenerator genera la etiqueta de envío imprimible de un paquete.
type LabelPDFGenerator interface {
	GenerateLabelPDF(ctx context.Context, parcel *entity.Parcel, sender, recipient *entity.User, route *entity.Location) ([]byte, error)
}
