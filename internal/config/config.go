// Package config materializes the application configuration from the
// environment, with optional .env support for local development. Rate and
// markup defaults come from the shop's cost blueprint.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/costing"
	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/pricing"
)

const (
	defaultDBPath          = "./dev.db"
	defaultPort            = "8080"
	defaultMaintenancePath = "./nozzle_maintenance.json"
)

// Config holds everything the server needs at startup. Rates and pricing
// parameters are loaded once and treated as read-only afterwards.
type Config struct {
	Port            string
	DBPath          string
	MaintenancePath string
	AdminToken      string

	Rates   costing.Rates
	Pricing pricing.Params
}

// Load reads environment variables and returns a populated Config. A missing
// .env file is fine; production injects the environment directly.
func Load(log *zap.Logger) Config {
	if log == nil {
		log = zap.NewNop()
	}
	_ = godotenv.Load()

	cfg := Config{
		Port:            getenvDefault("PORT", defaultPort),
		DBPath:          getenvDefault("DB_PATH", defaultDBPath),
		MaintenancePath: getenvDefault("MAINTENANCE_PATH", defaultMaintenancePath),
		AdminToken:      os.Getenv("ADMIN_TOKEN"),

		Rates: costing.Rates{
			PrinterPowerKW:           getFloat(log, "PRINTER_POWER_KW", 1.05),
			EnergyPricePerKWh:        getFloat(log, "ENERGY_PRICE_PER_KWH", 0.35),
			MaintenancePerHour:       getFloat(log, "MAINTENANCE_COST_PER_HOUR", 0.0765),
			LabourRatePerHour:        getFloat(log, "LABOUR_COST_PER_HOUR", 27.80),
			MonitoringFraction:       getFloat(log, "MONITORING_PERCENT", 10) / 100,
			AnnualOverhead:           getFloat(log, "OVERHEAD_PER_YEAR", 7200),
			AnnualOperatingHours:     getFloat(log, "ANNUAL_PRINT_HOURS", 1920),
			AbrasiveSurchargePerHour: getFloat(log, "ABRASIVE_SURCHARGE_PER_HOUR", 0.50),
			FallbackHoursPerGram:     getFloat(log, "AUTO_HOURS_PER_GRAM", 0.04),
		},
		Pricing: pricing.Params{
			MarkupMaterialFactor: getFloat(log, "MARKUP_MATERIAL_PERCENT", 180) / 100,
			MarkupVariableFactor: getFloat(log, "MARKUP_VARIABLE_PERCENT", 140) / 100,
			ColorSetupFeeMin:     getFloat(log, "COLOR_SETUP_FEE_MIN", 15),
			ColorSetupFeeMax:     getFloat(log, "COLOR_SETUP_FEE_MAX", 30),
			RushSurchargeRate:    getFloat(log, "RUSH_SURCHARGE_PERCENT", 25) / 100,
		},
	}

	if cfg.AdminToken == "" {
		log.Warn("ADMIN_TOKEN is not set; admin routes are disabled")
	}

	return cfg
}

// SanityWarnings flags configured values that are technically valid but
// outside the range a shop normally operates in.
func (c Config) SanityWarnings() []string {
	var warnings []string

	if energy := c.Rates.EnergyCostPerHour(); energy > 1.0 {
		warnings = append(warnings, fmt.Sprintf("energy cost per hour is unusually high: %.3f", energy))
	}
	if c.Pricing.MarkupMaterialFactor < 1.2 {
		warnings = append(warnings, fmt.Sprintf("material markup factor %.2f leaves little margin", c.Pricing.MarkupMaterialFactor))
	}
	if c.Pricing.MarkupVariableFactor < 1.2 {
		warnings = append(warnings, fmt.Sprintf("variable markup factor %.2f leaves little margin", c.Pricing.MarkupVariableFactor))
	}
	if c.Pricing.RushSurchargeRate > 0.50 {
		warnings = append(warnings, fmt.Sprintf("rush surcharge of %.0f%% may price out rush orders", c.Pricing.RushSurchargeRate*100))
	}

	return warnings
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getFloat parses a float from the environment, keeping the default and
// logging when the variable is present but malformed.
func getFloat(log *zap.Logger, key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warn("ignoring malformed numeric environment variable",
			zap.String("key", key), zap.String("value", raw))
		return fallback
	}
	return value
}
