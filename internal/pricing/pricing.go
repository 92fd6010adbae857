// Package pricing derives the sale price from a cost breakdown by applying
// differentiated markups and optional complexity surcharges.
package pricing

import (
	"fmt"

	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/costing"
)

// Params holds the externally configured pricing strategy. Markups are
// multiplicative factors applied to the cost component (1.8 sells material at
// 180% of its cost).
type Params struct {
	MarkupMaterialFactor float64
	MarkupVariableFactor float64
	ColorSetupFeeMin     float64
	ColorSetupFeeMax     float64
	RushSurchargeRate    float64 // 0.25 adds 25% on top of the final price
}

// Validate reports ErrConfigurationMissing when a pricing parameter is unset
// or inconsistent.
func (p Params) Validate() error {
	if p.MarkupMaterialFactor <= 0 {
		return fmt.Errorf("material markup factor is not set: %w", costing.ErrConfigurationMissing)
	}
	if p.MarkupVariableFactor <= 0 {
		return fmt.Errorf("variable markup factor is not set: %w", costing.ErrConfigurationMissing)
	}
	if p.ColorSetupFeeMin <= 0 || p.ColorSetupFeeMax < p.ColorSetupFeeMin {
		return fmt.Errorf("color setup fee range is not set: %w", costing.ErrConfigurationMissing)
	}
	if p.RushSurchargeRate < 0 {
		return fmt.Errorf("rush surcharge rate is negative: %w", costing.ErrConfigurationMissing)
	}
	return nil
}

// ColorSetupFee is the flat multicolor surcharge: the midpoint of the
// configured range.
func (p Params) ColorSetupFee() float64 {
	return (p.ColorSetupFeeMin + p.ColorSetupFeeMax) / 2
}

// Options are the per-job complexity flags.
type Options struct {
	Multicolor bool
	Rush       bool
}

// Quote pairs a cost breakdown with the derived sale price and margin.
type Quote struct {
	Breakdown costing.Breakdown `json:"breakdown"`
	SellPrice float64           `json:"sell_price"`
	MarginPct float64           `json:"margin_pct"`
}

// Profit is the absolute margin in currency.
func (q Quote) Profit() float64 {
	return q.SellPrice - q.Breakdown.TotalCost
}

// MarkupFactor is the overall sell-to-cost ratio, 0 for zero-cost jobs.
func (q Quote) MarkupFactor() float64 {
	if q.Breakdown.TotalCost == 0 {
		return 0
	}
	return q.SellPrice / q.Breakdown.TotalCost
}

// Engine prices jobs using a cost engine and one set of pricing parameters.
type Engine struct {
	costs  *costing.Engine
	params Params
}

func NewEngine(costs *costing.Engine, params Params) *Engine {
	return &Engine{costs: costs, params: params}
}

// Params returns the configured pricing parameters.
func (e *Engine) Params() Params {
	return e.params
}

// Price computes the cost breakdown for a job and derives the sale price.
// Material cost and time-based cost (variable plus wear) carry separate
// markups; the multicolor fee is added before the rush surcharge so rush
// scales the complete order value.
func (e *Engine) Price(in costing.Input, opts Options) (Quote, error) {
	if err := e.params.Validate(); err != nil {
		return Quote{}, err
	}

	breakdown, err := e.costs.Compute(in)
	if err != nil {
		return Quote{}, err
	}

	return e.FromBreakdown(breakdown, opts), nil
}

// FromBreakdown derives a quote from an already computed breakdown.
func (e *Engine) FromBreakdown(breakdown costing.Breakdown, opts Options) Quote {
	timeCost := breakdown.VariableCost + breakdown.WearSurcharge
	sellPrice := breakdown.MaterialCost*e.params.MarkupMaterialFactor + timeCost*e.params.MarkupVariableFactor

	if opts.Multicolor {
		sellPrice += e.params.ColorSetupFee()
	}
	if opts.Rush {
		sellPrice *= 1 + e.params.RushSurchargeRate
	}

	marginPct := 0.0
	if breakdown.TotalCost > 0 {
		marginPct = (sellPrice - breakdown.TotalCost) / breakdown.TotalCost * 100
	}

	return Quote{Breakdown: breakdown, SellPrice: sellPrice, MarginPct: marginPct}
}
