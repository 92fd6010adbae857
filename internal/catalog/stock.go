package catalog

// StockMaterials is the curated filament selection the shop starts from.
// Prices are bulk purchase prices (6+ spools) per kilogram.
func StockMaterials() []Material {
	return []Material{
		// Entry-level materials
		{Name: "PLA Basic", PricePerKg: 13.99, Active: true},
		{Name: "PETG Basic", PricePerKg: 19.99, Active: true},
		{Name: "ABS", PricePerKg: 19.99, Active: true},

		// Specialty materials
		{Name: "PLA Matte", PricePerKg: 19.99, Active: true},
		{Name: "ASA", PricePerKg: 24.99, Active: true},
		{Name: "PC", PricePerKg: 49.99, Active: true},

		// Fiber-filled composites
		{Name: "PLA-CF", PricePerKg: 29.99, Active: true},
		{Name: "PETG-CF", PricePerKg: 36.29, Active: true},
		{Name: "PETG-GF", PricePerKg: 39.99, Active: true},
		{Name: "PA-CF", PricePerKg: 79.99, Active: true},
	}
}

// StockWearProfiles holds print speed and nozzle wear data for the stock
// materials. Fiber-filled composites wear nozzles an order of magnitude
// faster than plain thermoplastics.
func StockWearProfiles() []WearProfile {
	return []WearProfile{
		{MaterialName: "PLA Basic", PrintSpeed: 30.0, WearMultiplier: 1.0, RecommendedNozzle: "Brass 0.4mm", ReplacementCost: 8.0},
		{MaterialName: "PETG Basic", PrintSpeed: 25.0, WearMultiplier: 1.2, RecommendedNozzle: "Brass 0.4mm", ReplacementCost: 8.0},
		{MaterialName: "ABS", PrintSpeed: 28.0, WearMultiplier: 1.1, RecommendedNozzle: "Brass 0.4mm", ReplacementCost: 8.0},

		{MaterialName: "PLA Matte", PrintSpeed: 28.0, WearMultiplier: 1.0, RecommendedNozzle: "Brass 0.4mm", ReplacementCost: 8.0},
		{MaterialName: "ASA", PrintSpeed: 26.0, WearMultiplier: 1.2, RecommendedNozzle: "Brass 0.4mm", ReplacementCost: 8.0},
		{MaterialName: "PC", PrintSpeed: 20.0, WearMultiplier: 1.5, RecommendedNozzle: "Hardened 0.4mm", ReplacementCost: 25.0},

		{MaterialName: "PLA-CF", PrintSpeed: 25.0, WearMultiplier: 8.0, RecommendedNozzle: "Hardened Steel", ReplacementCost: 30.0},
		{MaterialName: "PETG-CF", PrintSpeed: 22.0, WearMultiplier: 10.0, RecommendedNozzle: "Hardened Steel", ReplacementCost: 30.0},
		{MaterialName: "PETG-GF", PrintSpeed: 20.0, WearMultiplier: 12.0, RecommendedNozzle: "Ruby Nozzle", ReplacementCost: 90.0},
		{MaterialName: "PA-CF", PrintSpeed: 18.0, WearMultiplier: 15.0, RecommendedNozzle: "Ruby Nozzle", ReplacementCost: 90.0},
	}
}
