package components_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stratahub/strata-portal/internal/components"
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/types"
)

func TestSerializeRelationalPaths(t *testing.T) {
	reg := newPortalRegistry(t)
	ser := buildComponent(t, reg, &types.RockSample{}, registry.KindSerializer).(*components.Serializer)

	collected := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sample := &types.RockSample{
		ID:          uuid.New(),
		Name:        "Granite A",
		Location:    "Quarry North",
		Lithology:   "igneous",
		CollectedOn: &collected,
		Dataset:     &types.Dataset{Name: "Basin Survey 2026"},
		Owner:       nil, // not preloaded
	}

	out := ser.Serialize(sample)

	if out["name"] != "Granite A" {
		t.Fatalf("name: %v", out["name"])
	}
	if out["dataset__name"] != "Basin Survey 2026" {
		t.Fatalf("dataset__name: %v", out["dataset__name"])
	}
	if out["owner__email"] != nil {
		t.Fatalf("nil relation should project nil, got %v", out["owner__email"])
	}
	if _, present := out["sample_type"]; present {
		t.Fatal("discriminator leaked into the serialized output")
	}
	if _, present := out["updated_at"]; present {
		t.Fatal("field outside the serializer list leaked into the output")
	}
}

func TestSerializeList(t *testing.T) {
	reg := newPortalRegistry(t)
	ser := buildComponent(t, reg, &types.RockSample{}, registry.KindSerializer).(*components.Serializer)

	samples := []*types.RockSample{
		{Name: "Granite A"},
		{Name: "Shale B"},
	}
	out := ser.SerializeList(samples)
	if len(out) != 2 {
		t.Fatalf("serialized %d entities, want 2", len(out))
	}
	if out[0]["name"] != "Granite A" || out[1]["name"] != "Shale B" {
		t.Fatalf("unexpected projection: %v", out)
	}

	if empty := ser.SerializeList([]*types.RockSample{}); len(empty) != 0 {
		t.Fatalf("empty slice should serialize to an empty list, got %v", empty)
	}
}
