package main

import (
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/catalog"
	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/config"
	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/costing"
	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/db"
	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/maintenance"
	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/migrations"
	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/pricing"
	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/seed"
)

type server struct {
	db      *sql.DB
	log     *zap.Logger
	cfg     config.Config
	tracker *maintenance.Tracker

	// Catalog and engines are replaced wholesale after admin edits; requests
	// always see one consistent snapshot.
	mu     sync.RWMutex
	cat    *catalog.Catalog
	costs  *costing.Engine
	prices *pricing.Engine
}

func main() {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	cfg := config.Load(log)
	for _, warning := range cfg.SanityWarnings() {
		log.Warn("configuration outside normal operating range", zap.String("detail", warning))
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(database, "migrations"); err != nil {
		log.Fatal("failed to run database migrations", zap.Error(err))
	}

	stats, err := seed.Run(database)
	if err != nil {
		log.Fatal("failed to seed stock catalog", zap.Error(err))
	}
	if stats.Inserts > 0 {
		log.Info("seeded stock catalog", zap.Int("inserts", stats.Inserts))
	}

	srv := &server{db: database, log: log, cfg: cfg}
	if err := srv.reloadCatalog(); err != nil {
		log.Fatal("failed to load material catalog", zap.Error(err))
	}
	srv.tracker = maintenance.NewTracker(
		maintenance.NewFileStore(cfg.MaintenancePath),
		srv,
		log.Named("maintenance"),
	)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}

func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/materials", s.handleMaterialsList)
		r.Get("/quotes", s.handleQuotesList)
		r.Post("/quotes/cost", s.handleQuoteCost)
		r.Post("/quotes/price", s.handleQuotePrice)

		r.Route("/maintenance", func(r chi.Router) {
			r.Get("/status", s.handleMaintenanceStatus)
			r.Get("/history", s.handleMaintenanceHistory)
			r.Get("/statistics", s.handleMaintenanceStatistics)
			r.Post("/usage", s.handleMaintenanceUsage)
			r.Post("/replace", s.handleMaintenanceReplace)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Post("/materials", s.handleAdminMaterialCreate)
			r.Put("/materials/{id}", s.handleAdminMaterialUpdate)
		})
	})
	return r
}

// reloadCatalog swaps in a fresh catalog snapshot and rebuilds the engines
// bound to it. Called at startup and after every admin catalog write.
func (s *server) reloadCatalog() error {
	cat, err := catalog.Load(s.db, s.log.Named("catalog"))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cat = cat
	s.costs = costing.NewEngine(cat, s.cfg.Rates)
	s.prices = pricing.NewEngine(s.costs, s.cfg.Pricing)
	return nil
}

func (s *server) engines() (*costing.Engine, *pricing.Engine) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.costs, s.prices
}

func (s *server) currentCatalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// Profile lets the maintenance tracker read wear profiles from whichever
// catalog snapshot is current.
func (s *server) Profile(name string) (catalog.WearProfile, bool) {
	return s.currentCatalog().Profile(name)
}

func (s *server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if s.cfg.AdminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminToken)) != 1 {
			respondError(w, http.StatusUnauthorized, "missing or invalid admin token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondEngineError maps engine failures to HTTP statuses: input problems
// are the caller's to fix, configuration gaps are ours.
func (s *server) respondEngineError(w http.ResponseWriter, err error) {
	var unknownMaterial *catalog.UnknownMaterialError
	var invalidInput *costing.InvalidInputError

	switch {
	case errors.As(err, &unknownMaterial), errors.As(err, &invalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, costing.ErrConfigurationMissing):
		s.log.Error("pricing configuration incomplete", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "pricing configuration incomplete")
	default:
		s.log.Error("quote computation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
