// Package seed installs the stock material catalog and wear profiles on
// first startup. Running it again is a no-op; existing rows are never
// overwritten so operator edits survive restarts.
package seed

import (
	"database/sql"
	"fmt"

	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/catalog"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for _, m := range catalog.StockMaterials() {
		if err := ensureMaterial(tx, m, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	for _, p := range catalog.StockWearProfiles() {
		if err := ensureWearProfile(tx, p, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureMaterial(tx *sql.Tx, m catalog.Material, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM materials WHERE name = ? LIMIT 1)`, m.Name).Scan(&exists); err != nil {
		return fmt.Errorf("check material %q existence: %w", m.Name, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO materials (name, price_per_kg, notes, active)
		VALUES (?, ?, ?, ?)
	`, m.Name, m.PricePerKg, m.Notes, m.Active); err != nil {
		return fmt.Errorf("insert material %q: %w", m.Name, err)
	}
	stats.Inserts++
	return nil
}

func ensureWearProfile(tx *sql.Tx, p catalog.WearProfile, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM wear_profiles WHERE material_name = ? LIMIT 1)`, p.MaterialName).Scan(&exists); err != nil {
		return fmt.Errorf("check wear profile %q existence: %w", p.MaterialName, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO wear_profiles (material_name, print_speed_g_per_hour, wear_multiplier, recommended_nozzle, replacement_cost)
		VALUES (?, ?, ?, ?, ?)
	`, p.MaterialName, p.PrintSpeed, p.WearMultiplier, p.RecommendedNozzle, p.ReplacementCost); err != nil {
		return fmt.Errorf("insert wear profile %q: %w", p.MaterialName, err)
	}
	stats.Inserts++
	return nil
}
