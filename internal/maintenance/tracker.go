package maintenance

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/catalog"
)

// ProfileSource supplies wear profiles for recommendation heuristics.
// *catalog.Catalog satisfies it.
type ProfileSource interface {
	Profile(name string) (catalog.WearProfile, bool)
}

// InvalidUsageError rejects a usage record that would corrupt the ledger.
type InvalidUsageError struct {
	Material string
	Hours    float64
	Reason   string
}

func (e *InvalidUsageError) Error() string {
	return fmt.Sprintf("cannot record %v hours for %q: %s", e.Hours, e.Material, e.Reason)
}

// Status is the derived view of the installed nozzle, recomputed on demand.
type Status struct {
	NozzleType        string             `json:"nozzle_type"`
	InstallDate       time.Time          `json:"install_date"`
	AccumulatedHours  float64            `json:"accumulated_hours"`
	LifetimeHours     float64            `json:"lifetime_hours"`
	WearPercentage    float64            `json:"wear_percentage"`
	RemainingHours    float64            `json:"remaining_hours"`
	Warnings          []Warning          `json:"warnings"`
	Recommendations   []string           `json:"recommendations"`
	MaterialBreakdown map[string]float64 `json:"material_breakdown"`
}

// Statistics summarizes the replacement archive.
type Statistics struct {
	Replacements         int     `json:"replacements"`
	TotalHoursRetired    float64 `json:"total_hours_retired"`
	AverageLifetimeHours float64 `json:"average_lifetime_hours"`
}

// Tracker is the nozzle maintenance state machine. All mutations run a
// load-modify-save cycle under one mutex so concurrent requests cannot lose
// updates. Missing or corrupt persisted state degrades to a fresh default
// nozzle; the degradation is logged, never surfaced to callers.
type Tracker struct {
	store    Store
	profiles ProfileSource
	log      *zap.Logger
	now      func() time.Time

	mu sync.Mutex
}

func NewTracker(store Store, profiles ProfileSource, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		store:    store,
		profiles: profiles,
		log:      log,
		now:      time.Now,
	}
}

func (t *Tracker) defaultRecord() Record {
	return Record{
		CurrentNozzle: NozzleState{
			Type:            DefaultNozzleType,
			InstallDate:     t.now(),
			MaterialHistory: map[string]float64{},
		},
	}
}

// load reads the persisted record, applying the recovery policy: a missing
// record starts fresh silently, an unreadable one starts fresh with a
// warning.
func (t *Tracker) load() Record {
	rec, ok, err := t.store.Load()
	if err != nil {
		t.log.Warn("maintenance state unreadable, starting from a fresh default nozzle", zap.Error(err))
		return t.defaultRecord()
	}
	if !ok {
		return t.defaultRecord()
	}
	if rec.CurrentNozzle.Type == "" {
		rec.CurrentNozzle.Type = DefaultNozzleType
	}
	if rec.CurrentNozzle.MaterialHistory == nil {
		rec.CurrentNozzle.MaterialHistory = map[string]float64{}
	}
	return rec
}

// RecordUsage attributes abrasive print hours to the installed nozzle. Each
// call represents one real job: calls are additive and deliberately not
// idempotent. Non-abrasive materials and non-positive hours are rejected.
func (t *Tracker) RecordUsage(material string, hours float64) error {
	if hours <= 0 {
		return &InvalidUsageError{Material: material, Hours: hours, Reason: "hours must be positive"}
	}
	if !catalog.IsAbrasive(material) {
		return &InvalidUsageError{Material: material, Hours: hours, Reason: "material is not abrasive"}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	rec := t.load()
	rec.CurrentNozzle.AccumulatedHours += hours
	rec.CurrentNozzle.MaterialHistory[material] += hours

	if err := t.store.Save(rec); err != nil {
		return fmt.Errorf("persist usage: %w", err)
	}
	return nil
}

// Replace archives the installed nozzle and starts tracking a fresh one of
// newType. It returns the archived entry. This is the only transition that
// resets accumulated hours.
func (t *Tracker) Replace(newType, reason string) (HistoryEntry, error) {
	if _, ok := nozzleSpecs[newType]; !ok {
		return HistoryEntry{}, &UnknownNozzleTypeError{Type: newType, Available: NozzleTypes()}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	rec := t.load()
	retired := HistoryEntry{
		ReplacedOn:      t.now(),
		Type:            rec.CurrentNozzle.Type,
		HoursUsed:       rec.CurrentNozzle.AccumulatedHours,
		Reason:          reason,
		MaterialHistory: rec.CurrentNozzle.MaterialHistory,
	}

	rec.History = append(rec.History, retired)
	rec.CurrentNozzle = NozzleState{
		Type:            newType,
		InstallDate:     t.now(),
		MaterialHistory: map[string]float64{},
	}

	if err := t.store.Save(rec); err != nil {
		return HistoryEntry{}, fmt.Errorf("persist replacement: %w", err)
	}
	return retired, nil
}

// Status recomputes the derived wear view: percentage against the rated
// lifetime, active warnings and recommendations. Wear can exceed 100%; that
// is the terminal signal, not a separate state.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	rec := t.load()
	t.mu.Unlock()

	nozzle := rec.CurrentNozzle
	lifetime := lifetimeHours(nozzle.Type)
	wearPct := nozzle.AccumulatedHours / lifetime * 100

	remaining := lifetime - nozzle.AccumulatedHours
	if remaining < 0 {
		remaining = 0
	}

	return Status{
		NozzleType:        nozzle.Type,
		InstallDate:       nozzle.InstallDate,
		AccumulatedHours:  nozzle.AccumulatedHours,
		LifetimeHours:     lifetime,
		WearPercentage:    wearPct,
		RemainingHours:    remaining,
		Warnings:          activeWarnings(wearPct),
		Recommendations:   t.recommendations(wearPct, nozzle),
		MaterialBreakdown: nozzle.MaterialHistory,
	}
}

// History returns the replacement archive, oldest first.
func (t *Tracker) History() []HistoryEntry {
	t.mu.Lock()
	rec := t.load()
	t.mu.Unlock()
	return rec.History
}

// Statistics summarizes the archive: replacement count, total retired hours
// and average realized lifetime.
func (t *Tracker) Statistics() Statistics {
	t.mu.Lock()
	rec := t.load()
	t.mu.Unlock()

	stats := Statistics{Replacements: len(rec.History)}
	for _, entry := range rec.History {
		stats.TotalHoursRetired += entry.HoursUsed
	}
	if stats.Replacements > 0 {
		stats.AverageLifetimeHours = stats.TotalHoursRetired / float64(stats.Replacements)
	}
	return stats
}

// rubyBreakEvenHours is the cumulative CF/GF print time on a standard tip
// past which a premium nozzle pays for itself.
const rubyBreakEvenHours = 50.0

func (t *Tracker) recommendations(wearPct float64, nozzle NozzleState) []string {
	var recs []string

	switch {
	case wearPct >= 80:
		recs = append(recs, fmt.Sprintf("Order a new %s now; typical delivery is 2-3 days", nozzle.Type))
	case wearPct >= 60:
		recs = append(recs, "Schedule a nozzle replacement within the next two weeks")
	}

	if top, hours, ok := topMaterial(nozzle.MaterialHistory); ok && t.profiles != nil {
		if profile, found := t.profiles.Profile(top); found && profile.RecommendedNozzle != nozzle.Type {
			recs = append(recs, fmt.Sprintf("Consider switching to %s (recommended for %s, %.1f h on this install)",
				profile.RecommendedNozzle, top, hours))
		}
	}

	if (nozzle.Type == "Brass 0.4mm" || nozzle.Type == DefaultNozzleType) && wearPct >= 50 {
		if fiberHours(nozzle.MaterialHistory) > rubyBreakEvenHours {
			recs = append(recs, "A Ruby Nozzle can pay for itself with regular CF/GF printing (6x the lifetime)")
		}
	}

	return recs
}

func topMaterial(history map[string]float64) (string, float64, bool) {
	var (
		top   string
		hours float64
		found bool
	)
	for material, h := range history {
		if !found || h > hours || (h == hours && material < top) {
			top, hours, found = material, h, true
		}
	}
	return top, hours, found
}

func fiberHours(history map[string]float64) float64 {
	var total float64
	for material, h := range history {
		if strings.Contains(material, "-CF") || strings.Contains(material, "-GF") {
			total += h
		}
	}
	return total
}
