// Package costing computes the cost side of a print job: material, hourly
// operating cost and nozzle wear. It is pure; it reads the catalog and the
// configured rates and touches no other state.
package costing

import (
	"errors"
	"fmt"

	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/catalog"
)

// ErrConfigurationMissing marks computations attempted with unset
// cost-relevant rates. Rates must never silently default to zero.
var ErrConfigurationMissing = errors.New("configuration missing")

// InvalidInputError reports a negative or zero value where a positive one is
// required. Inputs are rejected, never clamped.
type InvalidInputError struct {
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
}

// Rates holds the externally configured operating-cost and fallback rates.
// All fields are required; Validate rejects unset values.
type Rates struct {
	PrinterPowerKW       float64
	EnergyPricePerKWh    float64
	MaintenancePerHour   float64
	LabourRatePerHour    float64
	MonitoringFraction   float64 // share of an operator hour spent monitoring, 0 < f <= 1
	AnnualOverhead       float64
	AnnualOperatingHours float64

	// AbrasiveSurchargePerHour is the flat wear rate applied when a job is
	// flagged abrasive but its material has no wear profile.
	AbrasiveSurchargePerHour float64

	// FallbackHoursPerGram estimates print duration for materials without a
	// profiled print speed when no explicit duration is given.
	FallbackHoursPerGram float64
}

// Validate reports ErrConfigurationMissing when any rate is unset.
func (r Rates) Validate() error {
	required := []struct {
		name  string
		value float64
	}{
		{"printer power (kW)", r.PrinterPowerKW},
		{"energy price per kWh", r.EnergyPricePerKWh},
		{"maintenance cost per hour", r.MaintenancePerHour},
		{"labour rate per hour", r.LabourRatePerHour},
		{"monitoring fraction", r.MonitoringFraction},
		{"annual overhead", r.AnnualOverhead},
		{"annual operating hours", r.AnnualOperatingHours},
		{"abrasive surcharge per hour", r.AbrasiveSurchargePerHour},
		{"fallback hours per gram", r.FallbackHoursPerGram},
	}
	for _, f := range required {
		if f.value <= 0 {
			return fmt.Errorf("%s is not set: %w", f.name, ErrConfigurationMissing)
		}
	}
	if r.MonitoringFraction > 1 {
		return fmt.Errorf("monitoring fraction %v exceeds 1: %w", r.MonitoringFraction, ErrConfigurationMissing)
	}
	return nil
}

// EnergyCostPerHour is printer draw times the energy tariff.
func (r Rates) EnergyCostPerHour() float64 {
	return r.PrinterPowerKW * r.EnergyPricePerKWh
}

// MonitoringCostPerHour is the operator-attention share of a print hour.
func (r Rates) MonitoringCostPerHour() float64 {
	return r.LabourRatePerHour * r.MonitoringFraction
}

// OverheadCostPerHour amortizes fixed yearly costs over the expected
// operating hours.
func (r Rates) OverheadCostPerHour() float64 {
	return r.AnnualOverhead / r.AnnualOperatingHours
}

// HourlyRate is the full variable operating cost per print hour, excluding
// material.
func (r Rates) HourlyRate() float64 {
	return r.EnergyCostPerHour() + r.MaintenancePerHour + r.MonitoringCostPerHour() + r.OverheadCostPerHour()
}

// Input describes one print job to be costed.
type Input struct {
	WeightGrams float64
	Material    string

	// PrintHours overrides the duration estimate when set.
	PrintHours *float64

	// Abrasive enables the flat wear fallback for materials without a wear
	// profile. Profiled materials ignore it.
	Abrasive bool
}

// Breakdown is the cost result of a single job. TotalCost is always the sum
// of the three components.
type Breakdown struct {
	MaterialCost  float64 `json:"material_cost"`
	VariableCost  float64 `json:"variable_cost"`
	WearSurcharge float64 `json:"wear_surcharge"`
	TotalCost     float64 `json:"total_cost"`
}

// Engine computes cost breakdowns against one catalog snapshot and one set
// of rates.
type Engine struct {
	catalog *catalog.Catalog
	rates   Rates
}

func NewEngine(cat *catalog.Catalog, rates Rates) *Engine {
	return &Engine{catalog: cat, rates: rates}
}

// Rates returns the configured rates.
func (e *Engine) Rates() Rates {
	return e.rates
}

// EffectiveHours resolves the print duration for a job: the explicit value
// when given, otherwise an estimate from weight and the material's profiled
// print speed, otherwise the flat fallback ratio.
func (e *Engine) EffectiveHours(in Input) (float64, error) {
	if in.PrintHours != nil {
		if *in.PrintHours < 0 {
			return 0, &InvalidInputError{Field: "print hours", Value: *in.PrintHours}
		}
		return *in.PrintHours, nil
	}
	if _, ok := e.catalog.Profile(in.Material); ok {
		return e.catalog.EstimatePrintHours(in.Material, in.WeightGrams), nil
	}
	return in.WeightGrams * e.rates.FallbackHoursPerGram, nil
}

// Compute prices the cost side of a job. It fails with an
// UnknownMaterialError when the material is not cataloged, an
// InvalidInputError for non-positive weight or negative hours, and
// ErrConfigurationMissing when rates are unset.
func (e *Engine) Compute(in Input) (Breakdown, error) {
	if err := e.rates.Validate(); err != nil {
		return Breakdown{}, err
	}
	if in.WeightGrams <= 0 {
		return Breakdown{}, &InvalidInputError{Field: "weight", Value: in.WeightGrams}
	}

	pricePerGram, err := e.catalog.PricePerGram(in.Material)
	if err != nil {
		return Breakdown{}, err
	}

	hours, err := e.EffectiveHours(in)
	if err != nil {
		return Breakdown{}, err
	}

	materialCost := in.WeightGrams * pricePerGram
	variableCost := e.rates.HourlyRate() * hours
	wearSurcharge := e.wearSurcharge(in, hours)

	return Breakdown{
		MaterialCost:  materialCost,
		VariableCost:  variableCost,
		WearSurcharge: wearSurcharge,
		TotalCost:     materialCost + variableCost + wearSurcharge,
	}, nil
}

func (e *Engine) wearSurcharge(in Input, hours float64) float64 {
	if profile, ok := e.catalog.Profile(in.Material); ok {
		return hours * profile.WearCostPerHour()
	}
	if in.Abrasive {
		return hours * e.rates.AbrasiveSurchargePerHour
	}
	return 0
}
