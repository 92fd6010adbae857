package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/catalog"
)

type materialView struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	PricePerKg  float64  `json:"price_per_kg"`
	Notes       string   `json:"notes,omitempty"`
	Abrasive    bool     `json:"abrasive"`
	WearProfile *profile `json:"wear_profile,omitempty"`
}

type profile struct {
	PrintSpeed        float64 `json:"print_speed_g_per_hour"`
	WearMultiplier    float64 `json:"wear_multiplier"`
	RecommendedNozzle string  `json:"recommended_nozzle"`
	ReplacementCost   float64 `json:"replacement_cost"`
}

func (s *server) handleMaterialsList(w http.ResponseWriter, r *http.Request) {
	cat := s.currentCatalog()

	views := make([]materialView, 0)
	for _, m := range cat.Materials() {
		view := materialView{
			ID:         m.ID,
			Name:       m.Name,
			PricePerKg: m.PricePerKg,
			Notes:      m.Notes,
			Abrasive:   catalog.IsAbrasive(m.Name),
		}
		if p, ok := cat.Profile(m.Name); ok {
			view.WearProfile = &profile{
				PrintSpeed:        p.PrintSpeed,
				WearMultiplier:    p.WearMultiplier,
				RecommendedNozzle: p.RecommendedNozzle,
				ReplacementCost:   p.ReplacementCost,
			}
		}
		views = append(views, view)
	}

	respondJSON(w, http.StatusOK, views)
}

type materialRequest struct {
	Name        string   `json:"name"`
	PricePerKg  float64  `json:"price_per_kg"`
	Notes       string   `json:"notes"`
	Active      *bool    `json:"active"`
	WearProfile *profile `json:"wear_profile"`
}

func (req *materialRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if req.PricePerKg <= 0 {
		return "price_per_kg must be greater than 0"
	}
	if p := req.WearProfile; p != nil {
		if p.PrintSpeed <= 0 {
			return "wear_profile.print_speed_g_per_hour must be greater than 0"
		}
		if p.WearMultiplier < 1.0 {
			return "wear_profile.wear_multiplier must be at least 1.0"
		}
		if p.RecommendedNozzle == "" {
			return "wear_profile.recommended_nozzle is required"
		}
		if p.ReplacementCost <= 0 {
			return "wear_profile.replacement_cost must be greater than 0"
		}
	}
	return ""
}

func (s *server) handleAdminMaterialCreate(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	if _, err := s.db.Exec(`
		INSERT INTO materials (name, price_per_kg, notes, active)
		VALUES (?, ?, ?, ?)
	`, req.Name, req.PricePerKg, req.Notes, active); err != nil {
		s.log.Error("failed to create material", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create material")
		return
	}

	if !s.upsertWearProfile(w, req) {
		return
	}
	if !s.refreshAfterCatalogWrite(w) {
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (s *server) handleAdminMaterialUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid material id")
		return
	}

	var req materialRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	result, err := s.db.Exec(`
		UPDATE materials
		SET
			name = ?,
			price_per_kg = ?,
			notes = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, req.Name, req.PricePerKg, req.Notes, active, id)
	if err != nil {
		s.log.Error("failed to update material", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to update material")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		s.log.Error("failed to update material", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to update material")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "material not found")
		return
	}

	if !s.upsertWearProfile(w, req) {
		return
	}
	if !s.refreshAfterCatalogWrite(w) {
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *server) upsertWearProfile(w http.ResponseWriter, req materialRequest) bool {
	if req.WearProfile == nil {
		return true
	}

	p := req.WearProfile
	if _, err := s.db.Exec(`
		INSERT INTO wear_profiles (material_name, print_speed_g_per_hour, wear_multiplier, recommended_nozzle, replacement_cost)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(material_name) DO UPDATE SET
			print_speed_g_per_hour = excluded.print_speed_g_per_hour,
			wear_multiplier = excluded.wear_multiplier,
			recommended_nozzle = excluded.recommended_nozzle,
			replacement_cost = excluded.replacement_cost,
			updated_at = CURRENT_TIMESTAMP
	`, req.Name, p.PrintSpeed, p.WearMultiplier, p.RecommendedNozzle, p.ReplacementCost); err != nil {
		s.log.Error("failed to upsert wear profile", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save wear profile")
		return false
	}
	return true
}

func (s *server) refreshAfterCatalogWrite(w http.ResponseWriter) bool {
	if err := s.reloadCatalog(); err != nil {
		s.log.Error("failed to reload catalog", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to reload catalog")
		return false
	}
	return true
}
