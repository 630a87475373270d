package excel

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/fleet-logistics/internal/model"
)

func sampleManifest() model.TripManifest {
	arrival := 1250.0
	return model.TripManifest{
		Trip: model.Trip{
			ID:          uuid.New(),
			DepartedAt:  time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC),
			DepartureKm: 1000,
			ArrivalKm:   &arrival,
		},
		Truck:  model.Truck{Brand: "Volvo", Model: "FH 540", Plate: "ABC1D23"},
		Driver: model.Driver{Name: "Joao"},
		Shipments: []model.Shipment{
			{ID: uuid.New(), Product: "Notebook", Weight: 10, Quantity: 1, Destination: "Campinas", Freight: 100},
			{ID: uuid.New(), Product: "Monitor", Weight: 20, Quantity: 2, Destination: "Jundiaí", Freight: 150},
			{ID: uuid.New(), Product: "Teclado", Weight: 5, Quantity: 3, Destination: "Campinas", Freight: 50},
		},
		GeneratedAt: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerateWorkbook(t *testing.T) {
	content, err := NewGenerator().Generate(sampleManifest())
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Resumo", "Campinas", "Jundiaí"}, file.GetSheetList())

	plate, err := file.GetCellValue("Resumo", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Volvo FH 540 (ABC1D23)", plate)

	distance, err := file.GetCellValue("Resumo", "B6")
	require.NoError(t, err)
	assert.Equal(t, "250.00", distance)

	total, err := file.GetCellValue("Resumo", "B9")
	require.NoError(t, err)
	assert.Equal(t, "R$ 300.00", total)

	rows, err := file.GetRows("Campinas")
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, "Notebook", rows[5][1])
	assert.Equal(t, "Teclado", rows[6][1])
}

func TestBuildSheetName(t *testing.T) {
	used := map[string]struct{}{}

	first := buildSheetName("São Paulo / Zona Sul", used)
	assert.Equal(t, "São Paulo - Zona Sul", first)
	used[first] = struct{}{}
	assert.Equal(t, "São Paulo - Zona Sul-2", buildSheetName("São Paulo / Zona Sul", used))

	long := buildSheetName(strings.Repeat("x", 40), used)
	assert.Len(t, []rune(long), 31)
	used[long] = struct{}{}
	next := buildSheetName(strings.Repeat("x", 40), used)
	assert.Len(t, []rune(next), 31)
	assert.True(t, strings.HasSuffix(next, "-2"))

	assert.Equal(t, "Sem destino", buildSheetName("   ", map[string]struct{}{}))
}
