package components_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stratahub/strata-portal/internal/components"
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/types"
)

func TestResourceExportImportRoundTrip(t *testing.T) {
	reg := newPortalRegistry(t)
	resource := buildComponent(t, reg, &types.RockSample{}, registry.KindResource).(*components.Resource)

	if want := []string{"name", "location", "lithology", "collected_on"}; !reflect.DeepEqual(resource.Header(), want) {
		t.Fatalf("header: %v", resource.Header())
	}

	collected := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	samples := []*types.RockSample{
		{Name: "Granite A", Location: "Quarry North", Lithology: "igneous", CollectedOn: &collected},
		{Name: "Shale B", Location: "River Cut", Lithology: "sedimentary"},
	}

	var buf bytes.Buffer
	if err := resource.ExportCSV(&buf, samples); err != nil {
		t.Fatalf("export: %v", err)
	}

	rows, err := resource.ImportCSV(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("imported %d rows, want 2", len(rows))
	}

	if rows[0]["name"] != "Granite A" || rows[0]["lithology"] != "igneous" {
		t.Fatalf("first row: %v", rows[0])
	}
	got, ok := rows[0]["collected_on"].(time.Time)
	if !ok || !got.Equal(collected) {
		t.Fatalf("collected_on did not survive the round trip: %v", rows[0]["collected_on"])
	}
	if rows[1]["collected_on"] != nil {
		t.Fatalf("empty cell should import as nil, got %v", rows[1]["collected_on"])
	}
}

func TestResourceImportRejectsForeignColumn(t *testing.T) {
	reg := newPortalRegistry(t)
	resource := buildComponent(t, reg, &types.RockSample{}, registry.KindResource).(*components.Resource)

	csv := "name,sample_type\nGranite A,secret\n"
	if _, err := resource.ImportCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected a column outside the resource to be rejected")
	}
}

func TestResourceImportSubsetHeader(t *testing.T) {
	reg := newPortalRegistry(t)
	resource := buildComponent(t, reg, &types.RockSample{}, registry.KindResource).(*components.Resource)

	csv := "name,lithology\nShale B,sedimentary\n"
	rows, err := resource.ImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "Shale B" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	if _, present := rows[0]["location"]; present {
		t.Fatal("absent column should stay absent from the row map")
	}
}

func TestResourceNumericCoercion(t *testing.T) {
	reg := newPortalRegistry(t)
	resource := buildComponent(t, reg, &types.Measurement{}, registry.KindResource).(*components.Resource)

	csv := "quantity,value,unit\ndensity,2.65,g/cm3\n"
	rows, err := resource.ImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if v, ok := rows[0]["value"].(float64); !ok || v != 2.65 {
		t.Fatalf("value coercion: %v (%T)", rows[0]["value"], rows[0]["value"])
	}
}
