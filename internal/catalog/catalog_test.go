package catalog

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func testCatalog() *Catalog {
	materials := []Material{
		{Name: "PLA Basic", PricePerKg: 13.99, Active: true},
		{Name: "PETG-CF", PricePerKg: 36.29, Active: true},
	}
	profiles := []WearProfile{
		{MaterialName: "PLA Basic", PrintSpeed: 30.0, WearMultiplier: 1.0, RecommendedNozzle: "Brass 0.4mm", ReplacementCost: 8.0},
		{MaterialName: "PETG-CF", PrintSpeed: 22.0, WearMultiplier: 10.0, RecommendedNozzle: "Hardened Steel", ReplacementCost: 30.0},
	}
	return New(materials, profiles, zap.NewNop())
}

func TestIsAbrasiveMatchesNamingConvention(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"PETG-CF", true},
		{"PETG-GF", true},
		{"PA-CF", true},
		{"PC Carbon", true},
		{"Glass Filled Nylon", true},
		{"petg-cf", true},
		{"PLA Basic", false},
		{"TPU 95A", false},
		{"PC", false},
	}

	for _, c := range cases {
		if got := IsAbrasive(c.name); got != c.want {
			t.Errorf("IsAbrasive(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestPricePerGram(t *testing.T) {
	cat := testCatalog()

	price, err := cat.PricePerGram("PLA Basic")
	if err != nil {
		t.Fatalf("PricePerGram returned error: %v", err)
	}
	nearlyEqual(t, "price per gram", price, 0.01399)

	// Whitespace in the lookup name is ignored.
	trimmed, err := cat.PricePerGram("  PLA Basic ")
	if err != nil {
		t.Fatalf("PricePerGram with whitespace returned error: %v", err)
	}
	nearlyEqual(t, "trimmed price per gram", trimmed, price)
}

func TestPricePerGramUnknownMaterialListsAvailable(t *testing.T) {
	cat := testCatalog()

	_, err := cat.PricePerGram("Unobtainium")
	var unknown *UnknownMaterialError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMaterialError, got %v", err)
	}
	if unknown.Name != "Unobtainium" {
		t.Fatalf("unexpected material in error: %q", unknown.Name)
	}
	if len(unknown.Available) != 2 || unknown.Available[0] != "PETG-CF" || unknown.Available[1] != "PLA Basic" {
		t.Fatalf("expected sorted available names, got %v", unknown.Available)
	}
}

func TestEstimatePrintHours(t *testing.T) {
	cat := testCatalog()

	// Profiled material uses its print speed.
	nearlyEqual(t, "PLA hours", cat.EstimatePrintHours("PLA Basic", 100), 100.0/30.0)
	nearlyEqual(t, "PETG-CF hours", cat.EstimatePrintHours("PETG-CF", 110), 5.0)

	// Unprofiled material falls back to the flat speed.
	nearlyEqual(t, "fallback hours", cat.EstimatePrintHours("Unknown", 100), 4.0)
}

func TestWearCostPerHour(t *testing.T) {
	cat := testCatalog()

	pla, _ := cat.Profile("PLA Basic")
	nearlyEqual(t, "PLA wear cost", pla.WearCostPerHour(), 0.008)

	// 10x multiplier shortens the 1000 h baseline to 100 h.
	cf, _ := cat.Profile("PETG-CF")
	nearlyEqual(t, "PETG-CF wear cost", cf.WearCostPerHour(), 0.30)
}

func TestNewWarnsOnAbrasiveNameWithoutProfile(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	materials := []Material{
		{Name: "PA12-CF", PricePerKg: 89.99, Active: true},
		{Name: "PETG-GF", PricePerKg: 39.99, Active: true},
	}
	profiles := []WearProfile{
		// Multiplier contradicts the abrasive naming convention.
		{MaterialName: "PETG-GF", PrintSpeed: 20.0, WearMultiplier: 1.0, RecommendedNozzle: "Ruby Nozzle", ReplacementCost: 90.0},
	}
	New(materials, profiles, log)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 configuration warnings, got %d: %v", len(entries), entries)
	}
}

func TestMaterialsSortedByName(t *testing.T) {
	cat := testCatalog()

	materials := cat.Materials()
	if len(materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(materials))
	}
	if materials[0].Name != "PETG-CF" || materials[1].Name != "PLA Basic" {
		t.Fatalf("materials not sorted by name: %+v", materials)
	}
}
