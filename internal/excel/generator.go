package excel

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/fleet-logistics/internal/model"
)

const summarySheet = "Resumo"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes a summary sheet for the trip followed by one sheet per
// destination listing the shipments headed there.
func (g *Generator) Generate(manifest model.TripManifest) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, summarySheet, manifest); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, group := range groupByDestination(manifest.Shipments) {
		sheetName := buildSheetName(group.destination, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := g.writeDetail(file, sheetName, manifest, group); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, manifest model.TripManifest) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Viagem")
	set("B1", manifest.Trip.ID.String())
	set("A2", "Caminhão")
	set("B2", fmt.Sprintf("%s %s (%s)", manifest.Truck.Brand, manifest.Truck.Model, manifest.Truck.Plate))
	set("A3", "Motorista")
	set("B3", manifest.Driver.Name)
	set("A4", "Saída")
	set("B4", formatDateTime(manifest.Trip.DepartedAt))
	set("A5", "Chegada")
	set("B5", formatOptionalTime(manifest.Trip.ArrivedAt))
	set("A6", "Km rodados")
	set("B6", formatDistance(manifest.Trip))
	set("A7", "Cargas")
	set("B7", len(manifest.Shipments))
	set("A8", "Peso total, kg")
	set("B8", formatFloat(manifest.TotalWeight()))
	set("A9", "Frete total")
	set("B9", formatMoney(manifest.TotalFreight()))
	set("A10", "Gerado em")
	set("B10", formatDateTime(manifest.GeneratedAt))

	tableRow := 12
	set(fmt.Sprintf("A%d", tableRow), "Destino")
	set(fmt.Sprintf("B%d", tableRow), "Cargas")
	set(fmt.Sprintf("C%d", tableRow), "Peso, kg")

	for i, group := range groupByDestination(manifest.Shipments) {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), group.destination)
		set(fmt.Sprintf("B%d", row), len(group.shipments))
		set(fmt.Sprintf("C%d", row), formatFloat(group.weight()))
	}

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	_ = file.SetColWidth(sheet, "C", "C", 14)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, manifest model.TripManifest, group destinationGroup) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Destino")
	set("B1", group.destination)
	set("A2", "Placa")
	set("B2", manifest.Truck.Plate)
	set("A3", "Peso, kg")
	set("B3", formatFloat(group.weight()))

	tableRow := 5
	headers := []string{
		"Carga",
		"Produto",
		"Origem",
		"Qtd.",
		"Peso, kg",
		"Dimensões, m",
		"Status",
		"Pagamento",
		"Frete",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, shipment := range group.shipments {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), shipment.ID.String())
		set(fmt.Sprintf("B%d", row), shipment.Product)
		set(fmt.Sprintf("C%d", row), shipment.Origin)
		set(fmt.Sprintf("D%d", row), shipment.Quantity)
		set(fmt.Sprintf("E%d", row), formatFloat(shipment.Weight))
		set(fmt.Sprintf("F%d", row), fmt.Sprintf("%.2f x %.2f x %.2f", shipment.Length, shipment.Width, shipment.Height))
		set(fmt.Sprintf("G%d", row), string(shipment.StatusOverall))
		set(fmt.Sprintf("H%d", row), shipment.PaymentStatus)
		set(fmt.Sprintf("I%d", row), formatMoney(shipment.Freight))
	}

	_ = file.SetColWidth(sheet, "A", "A", 38)
	_ = file.SetColWidth(sheet, "B", "C", 24)
	_ = file.SetColWidth(sheet, "D", "E", 10)
	_ = file.SetColWidth(sheet, "F", "F", 20)
	_ = file.SetColWidth(sheet, "G", "I", 22)
	return nil
}

type destinationGroup struct {
	destination string
	shipments   []model.Shipment
}

func (g destinationGroup) weight() float64 {
	total := 0.0
	for _, shipment := range g.shipments {
		total += shipment.Weight
	}
	return total
}

func groupByDestination(shipments []model.Shipment) []destinationGroup {
	index := map[string]int{}
	var groups []destinationGroup
	for _, shipment := range shipments {
		key := strings.TrimSpace(shipment.Destination)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, destinationGroup{destination: key})
		}
		groups[i].shipments = append(groups[i].shipments, shipment)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].destination < groups[j].destination
	})
	return groups
}

// buildSheetName keeps names within Excel's 31 character limit and unique
// within the workbook.
func buildSheetName(destination string, used map[string]struct{}) string {
	base := sanitizeSheetName(destination)
	base = truncate(base, 31)

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		nameCandidate = truncate(base, 31-len([]rune(suffix))) + suffix
		counter++
	}
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) > max {
		return string(runes[:max])
	}
	return value
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sem destino"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Sem destino"
	}
	return value
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDateTime(*t)
}

func formatDistance(trip model.Trip) string {
	if trip.ArrivalKm == nil {
		return ""
	}
	return formatFloat(trip.DistanceKm())
}

func formatFloat(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatMoney(value float64) string {
	return fmt.Sprintf("R$ %.2f", value)
}
