package catalog

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	// baselineNozzleLifetimeHours is the rated lifetime of a baseline
	// consumable at wear multiplier 1.0. Higher multipliers shorten the
	// lifetime proportionally.
	baselineNozzleLifetimeHours = 1000.0

	// fallbackPrintSpeed is used to estimate print hours for materials
	// without a wear profile.
	fallbackPrintSpeed = 25.0 // grams per hour
)

// Material is a filament type with its bulk purchase price.
type Material struct {
	ID         int64
	Name       string
	PricePerKg float64
	Notes      string
	Active     bool
}

// PricePerGram derives the per-gram price from the bulk price.
func (m Material) PricePerGram() float64 {
	return m.PricePerKg / 1000.0
}

// WearProfile describes how a material prints and how fast it degrades the
// installed nozzle relative to a baseline material (multiplier 1.0).
type WearProfile struct {
	MaterialName      string
	PrintSpeed        float64 // grams per hour
	WearMultiplier    float64
	RecommendedNozzle string
	ReplacementCost   float64
}

// WearCostPerHour amortizes the recommended consumable's replacement cost
// over its effective lifetime under this material.
func (p WearProfile) WearCostPerHour() float64 {
	lifetime := baselineNozzleLifetimeHours / p.WearMultiplier
	return p.ReplacementCost / lifetime
}

// abrasiveMarkers is the fixed naming convention for fiber-filled filaments.
// Matching is by name, not by a database flag; keep this list in sync with
// supplier naming.
var abrasiveMarkers = []string{"-CF", "-GF", "CARBON", "GLASS", "FIBER"}

// IsAbrasive reports whether a material name indicates a fiber-reinforced,
// nozzle-wearing filament.
func IsAbrasive(name string) bool {
	upper := strings.ToUpper(name)
	for _, marker := range abrasiveMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// UnknownMaterialError reports a lookup for a material that is not in the
// catalog, including the full valid set so the caller can re-prompt.
type UnknownMaterialError struct {
	Name      string
	Available []string
}

func (e *UnknownMaterialError) Error() string {
	return fmt.Sprintf("unknown material %q, available: %s", e.Name, strings.Join(e.Available, ", "))
}

// Catalog is the read-only reference data consumed by the cost engine:
// materials with prices plus per-material wear profiles. It is built once at
// load time and never mutated afterwards.
type Catalog struct {
	materials map[string]Material
	profiles  map[string]WearProfile
	names     []string
}

// New builds a catalog from loaded reference data. Abrasive-named materials
// without a wear profile, or with a multiplier that contradicts the naming
// convention, are flagged as configuration warnings.
func New(materials []Material, profiles []WearProfile, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}

	c := &Catalog{
		materials: make(map[string]Material, len(materials)),
		profiles:  make(map[string]WearProfile, len(profiles)),
	}

	for _, p := range profiles {
		c.profiles[p.MaterialName] = p
	}

	for _, m := range materials {
		c.materials[m.Name] = m
		c.names = append(c.names, m.Name)

		if !IsAbrasive(m.Name) {
			continue
		}
		profile, ok := c.profiles[m.Name]
		switch {
		case !ok:
			log.Warn("abrasive-named material has no wear profile",
				zap.String("material", m.Name))
		case profile.WearMultiplier <= 1.0:
			log.Warn("abrasive-named material has a non-abrasive wear multiplier",
				zap.String("material", m.Name),
				zap.Float64("wear_multiplier", profile.WearMultiplier))
		}
	}

	sort.Strings(c.names)
	return c
}

// Names returns all material names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Materials returns all materials sorted by name.
func (c *Catalog) Materials() []Material {
	out := make([]Material, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.materials[name])
	}
	return out
}

// Material looks up a material by name. Leading and trailing whitespace in
// the name is ignored.
func (c *Catalog) Material(name string) (Material, bool) {
	m, ok := c.materials[strings.TrimSpace(name)]
	return m, ok
}

// PricePerGram returns the per-gram price for a material, or an
// UnknownMaterialError listing the valid names.
func (c *Catalog) PricePerGram(name string) (float64, error) {
	m, ok := c.Material(name)
	if !ok {
		return 0, &UnknownMaterialError{Name: strings.TrimSpace(name), Available: c.Names()}
	}
	return m.PricePerGram(), nil
}

// Profile returns the wear profile for a material, if one exists.
func (c *Catalog) Profile(name string) (WearProfile, bool) {
	p, ok := c.profiles[strings.TrimSpace(name)]
	return p, ok
}

// EstimatePrintHours estimates print duration from weight and the material's
// profiled print speed, falling back to a flat speed for unprofiled
// materials.
func (c *Catalog) EstimatePrintHours(name string, weightGrams float64) float64 {
	if p, ok := c.Profile(name); ok && p.PrintSpeed > 0 {
		return weightGrams / p.PrintSpeed
	}
	return weightGrams / fallbackPrintSpeed
}
