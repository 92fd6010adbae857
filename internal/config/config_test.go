package config

import (
	"math"
	"testing"

	"go.uber.org/zap"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load(zap.NewNop())

	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.DBPath != "./dev.db" {
		t.Fatalf("db path = %q, want %q", cfg.DBPath, "./dev.db")
	}
	if cfg.MaintenancePath != "./nozzle_maintenance.json" {
		t.Fatalf("maintenance path = %q, want %q", cfg.MaintenancePath, "./nozzle_maintenance.json")
	}

	nearlyEqual(t, "printer power", cfg.Rates.PrinterPowerKW, 1.05)
	nearlyEqual(t, "energy price", cfg.Rates.EnergyPricePerKWh, 0.35)
	nearlyEqual(t, "labour rate", cfg.Rates.LabourRatePerHour, 27.80)
	nearlyEqual(t, "monitoring fraction", cfg.Rates.MonitoringFraction, 0.10)
	nearlyEqual(t, "annual overhead", cfg.Rates.AnnualOverhead, 7200)
	nearlyEqual(t, "annual operating hours", cfg.Rates.AnnualOperatingHours, 1920)

	nearlyEqual(t, "material markup", cfg.Pricing.MarkupMaterialFactor, 1.8)
	nearlyEqual(t, "variable markup", cfg.Pricing.MarkupVariableFactor, 1.4)
	nearlyEqual(t, "rush surcharge", cfg.Pricing.RushSurchargeRate, 0.25)
	nearlyEqual(t, "color setup fee", cfg.Pricing.ColorSetupFee(), 22.50)

	if err := cfg.Rates.Validate(); err != nil {
		t.Fatalf("default rates should validate: %v", err)
	}
	if err := cfg.Pricing.Validate(); err != nil {
		t.Fatalf("default pricing should validate: %v", err)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENERGY_PRICE_PER_KWH", "0.42")
	t.Setenv("MARKUP_MATERIAL_PERCENT", "200")
	t.Setenv("MONITORING_PERCENT", "15")
	t.Setenv("ADMIN_TOKEN", "hunter2")

	cfg := Load(zap.NewNop())

	if cfg.Port != "9090" {
		t.Fatalf("port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.AdminToken != "hunter2" {
		t.Fatalf("admin token = %q, want %q", cfg.AdminToken, "hunter2")
	}
	nearlyEqual(t, "energy price", cfg.Rates.EnergyPricePerKWh, 0.42)
	nearlyEqual(t, "material markup", cfg.Pricing.MarkupMaterialFactor, 2.0)
	nearlyEqual(t, "monitoring fraction", cfg.Rates.MonitoringFraction, 0.15)
}

func TestLoadKeepsDefaultOnMalformedValue(t *testing.T) {
	t.Setenv("LABOUR_COST_PER_HOUR", "not-a-number")

	cfg := Load(zap.NewNop())
	nearlyEqual(t, "labour rate", cfg.Rates.LabourRatePerHour, 27.80)
}

func TestSanityWarnings(t *testing.T) {
	cfg := Load(zap.NewNop())
	if warnings := cfg.SanityWarnings(); len(warnings) != 0 {
		t.Fatalf("defaults should carry no sanity warnings, got %v", warnings)
	}

	cfg.Rates.PrinterPowerKW = 4.0 // 1.40/h energy
	cfg.Pricing.MarkupMaterialFactor = 1.0
	cfg.Pricing.RushSurchargeRate = 0.75

	warnings := cfg.SanityWarnings()
	if len(warnings) != 3 {
		t.Fatalf("expected 3 sanity warnings, got %d: %v", len(warnings), warnings)
	}
}
