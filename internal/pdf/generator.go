package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/fleet-logistics/internal/model"
)

const fontName = "Helvetica"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the trip manifest on a landscape A4 page. Core fonts are
// cp1252 encoded, so every string goes through the translator to keep accents.
func (g *Generator) Generate(manifest model.TripManifest) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, tr("Manifesto de viagem"), "", 1, "C", false, 0, "")

	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Viagem %s emitida em %s", manifest.Trip.ID, formatDateTime(manifest.GeneratedAt))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	infoBlock(pdf, tr, "Veículo", []string{
		fmt.Sprintf("Placa: %s", safeValue(manifest.Truck.Plate)),
		fmt.Sprintf("Modelo: %s %s", manifest.Truck.Brand, manifest.Truck.Model),
		fmt.Sprintf("Carga máxima: %s kg", formatAmount(manifest.Truck.MaxLoad, 2)),
	})
	pdf.Ln(2)
	infoBlock(pdf, tr, "Motorista", []string{
		safeValue(manifest.Driver.Name),
		fmt.Sprintf("CNH: %s", safeValue(manifest.Driver.CNH)),
		fmt.Sprintf("WhatsApp: %s", safeValue(manifest.Driver.WhatsappPhone)),
	})
	pdf.Ln(2)
	infoBlock(pdf, tr, "Percurso", []string{
		fmt.Sprintf("Saída: %s, km %s", formatDateTime(manifest.Trip.DepartedAt), formatAmount(manifest.Trip.DepartureKm, 1)),
		fmt.Sprintf("Chegada: %s", arrival(manifest.Trip)),
	})
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Cargas"), "", 1, "L", false, 0, "")

	headers := []string{"Produto", "Origem", "Destino", "Qtd.", "Peso, kg", "Status", "Frete, R$"}
	colWidths := []float64{55, 45, 45, 17, 25, 45, 35}
	drawTableRow(pdf, tr, headers, colWidths, true)

	for _, shipment := range manifest.Shipments {
		drawTableRow(pdf, tr, []string{
			shipment.Product,
			shipment.Origin,
			shipment.Destination,
			fmt.Sprintf("%d", shipment.Quantity),
			formatAmount(shipment.Weight, 2),
			string(shipment.StatusOverall),
			formatAmount(shipment.Freight, 2),
		}, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Peso total: %s kg", formatAmount(manifest.TotalWeight(), 2))), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Frete total: R$ %s", formatAmount(manifest.TotalFreight(), 2))), "", 1, "R", false, 0, "")

	pdf.Ln(6)
	signatureBlock(pdf, tr, "Motorista", manifest.Driver.Name)
	signatureBlock(pdf, tr, "Expedição", "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func infoBlock(pdf *gofpdf.Fpdf, tr func(string) string, title string, lines []string) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	for _, line := range lines {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i == 3 || i == 4 || i == 6 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func signatureBlock(pdf *gofpdf.Fpdf, tr func(string) string, label, name string) {
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("%s: ______________________ /%s/", label, safeValue(name))), "", 1, "L", false, 0, "")
}

func arrival(trip model.Trip) string {
	if trip.ArrivedAt == nil || trip.ArrivalKm == nil {
		return "em andamento"
	}
	return fmt.Sprintf("%s, km %s (%s km rodados)",
		formatDateTime(*trip.ArrivedAt), formatAmount(*trip.ArrivalKm, 1), formatAmount(trip.DistanceKm(), 1))
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, value)
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006 15:04")
}
