// Package maintenance tracks wear on the currently installed nozzle across
// abrasive print jobs: accumulated hours per material, staged warnings
// against the nozzle's rated lifetime, replacement recommendations and the
// archive of retired nozzles.
package maintenance

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultNozzleType is the consumable assumed installed when no maintenance
// record exists yet.
const DefaultNozzleType = "Hardened Steel"

// NozzleSpec is the rated lifetime (in abrasive print hours) and replacement
// cost of a nozzle type.
type NozzleSpec struct {
	LifetimeHours   float64
	ReplacementCost float64
}

// nozzleSpecs is the fixed enumeration of installable nozzle types. Brass
// tips are listed for completeness but are not suited for abrasive work.
var nozzleSpecs = map[string]NozzleSpec{
	"Brass 0.4mm":      {LifetimeHours: 50, ReplacementCost: 8.0},
	"Brass 0.6mm":      {LifetimeHours: 50, ReplacementCost: 8.0},
	"Hardened 0.4mm":   {LifetimeHours: 250, ReplacementCost: 25.0},
	"Hardened 0.6mm":   {LifetimeHours: 250, ReplacementCost: 25.0},
	"Hardened Steel":   {LifetimeHours: 250, ReplacementCost: 30.0},
	"Ruby Nozzle":      {LifetimeHours: 1500, ReplacementCost: 90.0},
	"Tungsten Carbide": {LifetimeHours: 1000, ReplacementCost: 60.0},
}

// NozzleTypes returns the known nozzle types in sorted order.
func NozzleTypes() []string {
	types := make([]string, 0, len(nozzleSpecs))
	for t := range nozzleSpecs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Spec returns the lifetime and cost data for a nozzle type.
func Spec(nozzleType string) (NozzleSpec, bool) {
	s, ok := nozzleSpecs[nozzleType]
	return s, ok
}

// lifetimeHours returns the rated lifetime for a type, falling back to the
// hardened baseline for types persisted before the enumeration was closed.
func lifetimeHours(nozzleType string) float64 {
	if s, ok := nozzleSpecs[nozzleType]; ok {
		return s.LifetimeHours
	}
	return nozzleSpecs[DefaultNozzleType].LifetimeHours
}

// UnknownNozzleTypeError reports a replacement with a type outside the fixed
// enumeration.
type UnknownNozzleTypeError struct {
	Type      string
	Available []string
}

func (e *UnknownNozzleTypeError) Error() string {
	return fmt.Sprintf("unknown nozzle type %q, available: %s", e.Type, strings.Join(e.Available, ", "))
}

// NozzleState is the currently installed consumable: its type, when it was
// installed and the abrasive hours it has absorbed since, broken down per
// material. AccumulatedHours always equals the sum of MaterialHistory.
type NozzleState struct {
	Type             string             `json:"type"`
	InstallDate      time.Time          `json:"install_date"`
	AccumulatedHours float64            `json:"accumulated_hours"`
	MaterialHistory  map[string]float64 `json:"material_history"`
}

// HistoryEntry archives a retired nozzle at the moment of replacement.
// Entries are append-only and never mutated.
type HistoryEntry struct {
	ReplacedOn      time.Time          `json:"replaced_on"`
	Type            string             `json:"type"`
	HoursUsed       float64            `json:"hours_used"`
	Reason          string             `json:"reason"`
	MaterialHistory map[string]float64 `json:"material_history"`
}

// Record is the single persisted maintenance unit: the installed nozzle plus
// the ordered replacement history. It is always loaded and saved whole.
type Record struct {
	CurrentNozzle NozzleState    `json:"current_nozzle"`
	History       []HistoryEntry `json:"history"`
}
