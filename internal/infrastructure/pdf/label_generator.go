// Package pdf implementa la generación de la etiqueta de envío de un paquete.
//
// Layout de la etiqueta A6 apaisada:
//
//	┌───────────────────────────────────────────────┐
//	│  MATWANA LOGISTICS        │  N° rastreo        │
//	│  ───────────────────────────────────────────  │
//	│  REMITENTE: nombre + teléfono                  │
//	│  DESTINATARIO: nombre + teléfono               │
//	│  ───────────────────────────────────────────  │
//	│  RUTA: origen → destino │ peso │ costo         │
//	│  ───────────────────────────────────────────  │
//	│  CÓDIGO DE BARRAS (número de rastreo)          │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/matwana/logistics-api/internal/application/usecase"
	"github.com/matwana/logistics-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 94, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.LabelPDFGenerator = (*MarotoLabelGenerator)(nil)

// MarotoLabelGenerator implementa usecase.LabelPDFGenerator usando Maroto v2.
type MarotoLabelGenerator struct{}

// NewMarotoLabelGenerator construye el generador.
func NewMarotoLabelGenerator() *MarotoLabelGenerator { return &MarotoLabelGenerator{} }

// GenerateLabelPDF genera el PDF de la etiqueta y devuelve sus bytes.
// sender, recipient y route pueden ser nil si las referencias del paquete
// ya no resuelven; la etiqueta usa "—" en su lugar.
func (g *MarotoLabelGenerator) GenerateLabelPDF(
	_ context.Context,
	parcel *entity.Parcel,
	sender, recipient *entity.User,
	route *entity.Location,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Etiqueta de envío "+parcel.TrackingNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(parcel))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("REMITENTE", sender))
	m.AddRows(partyRow("DESTINATARIO", recipient))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(routeRow(parcel, route))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(barcodeRow(parcel))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: marca (izq) y número de rastreo (der).
func headerRow(parcel *entity.Parcel) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New("MATWANA LOGISTICS", props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
			}),
			text.New("Etiqueta de envío", props.Text{
				Size: 7, Top: 8, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("N° RASTREO", props.Text{
				Style: fontstyle.Bold, Size: 6, Align: align.Right,
				Color: colorGray, Top: 1,
			}),
			text.New(parcel.TrackingNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 5,
			}),
		),
	)
}

// partyRow: nombre + teléfono de remitente o destinatario.
func partyRow(label string, u *entity.User) core.Row {
	name, phone := "—", "—"
	if u != nil {
		name, phone = u.Name, u.PhoneNumber
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 6, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Tel: %s", name, phone), props.Text{
				Size: 8, Top: 5,
			}),
		),
	)
}

// routeRow: origen → destino, peso y costo de envío.
func routeRow(parcel *entity.Parcel, route *entity.Location) core.Row {
	ruta := "—"
	if route != nil {
		ruta = route.Origin + " → " + route.Destination
	}
	costo := "—"
	if parcel.ShippingCost.Valid {
		costo = parcel.ShippingCost.Decimal.StringFixed(2)
	}
	return row.New(10).Add(
		col.New(6).Add(
			text.New("RUTA", props.Text{
				Style: fontstyle.Bold, Size: 6, Color: colorPrimary, Top: 1,
			}),
			text.New(ruta, props.Text{Size: 8, Top: 5}),
		),
		col.New(3).Add(
			text.New("PESO", props.Text{
				Style: fontstyle.Bold, Size: 6, Color: colorPrimary, Top: 1,
			}),
			text.New(parcel.Weight.String()+" kg", props.Text{Size: 8, Top: 5}),
		),
		col.New(3).Add(
			text.New("COSTO", props.Text{
				Style: fontstyle.Bold, Size: 6, Color: colorPrimary, Top: 1,
			}),
			text.New(costo, props.Text{Size: 8, Top: 5}),
		),
	)
}

// barcodeRow: código de barras del número de rastreo, centrado.
func barcodeRow(parcel *entity.Parcel) core.Row {
	return row.New(22).Add(
		col.New(12).Add(
			code.NewBar(parcel.TrackingNumber, props.Barcode{
				Percent: 90,
				Center:  true,
			}),
		),
	)
}
