package main

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/catalog"
	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/costing"
	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/pricing"
)

type costRequest struct {
	WeightGrams float64  `json:"weight_g"`
	Material    string   `json:"material"`
	PrintHours  *float64 `json:"print_hours"`
	Abrasive    bool     `json:"abrasive"`
}

func (req costRequest) input() costing.Input {
	return costing.Input{
		WeightGrams: req.WeightGrams,
		Material:    req.Material,
		PrintHours:  req.PrintHours,
		Abrasive:    req.Abrasive,
	}
}

type priceRequest struct {
	costRequest
	Multicolor bool `json:"multicolor"`
	Rush       bool `json:"rush"`

	// RecordUsage advances the nozzle ledger with this job's abrasive hours.
	RecordUsage bool `json:"record_usage"`
	// Save persists the quote in the searchable log.
	Save  bool   `json:"save"`
	Title string `json:"title"`
	Notes string `json:"notes"`
}

type priceResponse struct {
	pricing.Quote
	PrintHours    float64 `json:"print_hours"`
	UsageRecorded bool    `json:"usage_recorded"`
}

func (s *server) handleQuoteCost(w http.ResponseWriter, r *http.Request) {
	var req costRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	costs, _ := s.engines()
	breakdown, err := costs.Compute(req.input())
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, breakdown)
}

func (s *server) handleQuotePrice(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	costs, prices := s.engines()
	quote, err := prices.Price(req.input(), pricing.Options{Multicolor: req.Multicolor, Rush: req.Rush})
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	hours, err := costs.EffectiveHours(req.input())
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	resp := priceResponse{Quote: quote, PrintHours: hours}

	// The cost engine is pure; feeding the wear ledger is this caller's job.
	if req.RecordUsage && catalog.IsAbrasive(req.Material) {
		if err := s.tracker.RecordUsage(req.Material, hours); err != nil {
			s.log.Error("failed to record abrasive usage", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to record abrasive usage")
			return
		}
		resp.UsageRecorded = true
	}

	if req.Save {
		if err := s.saveQuote(req, quote, hours); err != nil {
			s.log.Error("failed to save quote", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to save quote")
			return
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *server) saveQuote(req priceRequest, quote pricing.Quote, hours float64) error {
	_, err := s.db.Exec(`
		INSERT INTO quotes (
			title, notes, material, weight_g, print_hours, multicolor, rush,
			material_cost, variable_cost, wear_surcharge, total_cost, sell_price, margin_pct
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		req.Title, req.Notes, req.Material, req.WeightGrams, hours, req.Multicolor, req.Rush,
		quote.Breakdown.MaterialCost, quote.Breakdown.VariableCost, quote.Breakdown.WearSurcharge,
		quote.Breakdown.TotalCost, quote.SellPrice, quote.MarginPct,
	)
	return err
}

type quoteListItem struct {
	CreatedAt string  `json:"created_at"`
	Title     string  `json:"title"`
	Material  string  `json:"material"`
	TotalCost float64 `json:"total_cost"`
	SellPrice float64 `json:"sell_price"`
	MarginPct float64 `json:"margin_pct"`
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.listQuotes(query)
	if err != nil {
		s.log.Error("failed to list quotes", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load quotes")
		return
	}

	respondJSON(w, http.StatusOK, quotes)
}

func (s *server) listQuotes(query string) ([]quoteListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT
			created_at,
			COALESCE(title, ''),
			material,
			total_cost,
			sell_price,
			margin_pct
		FROM quotes
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]quoteListItem, 0)
	for rows.Next() {
		var item quoteListItem
		if err := rows.Scan(&item.CreatedAt, &item.Title, &item.Material, &item.TotalCost, &item.SellPrice, &item.MarginPct); err != nil {
			return nil, err
		}
		quotes = append(quotes, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return quotes, nil
}
