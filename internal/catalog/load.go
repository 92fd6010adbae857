package catalog

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Load reads active materials and their wear profiles from the database and
// builds a read-only catalog snapshot.
func Load(db *sql.DB, log *zap.Logger) (*Catalog, error) {
	materials, err := loadMaterials(db)
	if err != nil {
		return nil, err
	}

	profiles, err := loadWearProfiles(db)
	if err != nil {
		return nil, err
	}

	return New(materials, profiles, log), nil
}

func loadMaterials(db *sql.DB) ([]Material, error) {
	rows, err := db.Query(`
		SELECT id, name, price_per_kg, COALESCE(notes, ''), active
		FROM materials
		WHERE active = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]Material, 0)
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.PricePerKg, &m.Notes, &m.Active); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}

	return materials, nil
}

func loadWearProfiles(db *sql.DB) ([]WearProfile, error) {
	rows, err := db.Query(`
		SELECT material_name, print_speed_g_per_hour, wear_multiplier, recommended_nozzle, replacement_cost
		FROM wear_profiles
		ORDER BY material_name
	`)
	if err != nil {
		return nil, fmt.Errorf("query wear profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]WearProfile, 0)
	for rows.Next() {
		var p WearProfile
		if err := rows.Scan(&p.MaterialName, &p.PrintSpeed, &p.WearMultiplier, &p.RecommendedNozzle, &p.ReplacementCost); err != nil {
			return nil, fmt.Errorf("scan wear profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wear profiles: %w", err)
	}

	return profiles, nil
}
