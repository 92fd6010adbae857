package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/AngelDust21/Fillament-InsightGraph-sub000/internal/maintenance"
)

func (s *server) handleMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.tracker.Status())
}

func (s *server) handleMaintenanceHistory(w http.ResponseWriter, r *http.Request) {
	history := s.tracker.History()
	if history == nil {
		history = []maintenance.HistoryEntry{}
	}
	respondJSON(w, http.StatusOK, history)
}

func (s *server) handleMaintenanceStatistics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.tracker.Statistics())
}

type usageRequest struct {
	Material string  `json:"material"`
	Hours    float64 `json:"hours"`
}

func (s *server) handleMaintenanceUsage(w http.ResponseWriter, r *http.Request) {
	var req usageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.tracker.RecordUsage(req.Material, req.Hours); err != nil {
		var invalid *maintenance.InvalidUsageError
		if errors.As(err, &invalid) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("failed to record abrasive usage", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to record abrasive usage")
		return
	}

	respondJSON(w, http.StatusOK, s.tracker.Status())
}

type replaceRequest struct {
	NewType string `json:"new_type"`
	Reason  string `json:"reason"`
}

type replaceResponse struct {
	Retired maintenance.HistoryEntry `json:"retired"`
	Status  maintenance.Status       `json:"status"`
}

func (s *server) handleMaintenanceReplace(w http.ResponseWriter, r *http.Request) {
	var req replaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	retired, err := s.tracker.Replace(req.NewType, req.Reason)
	if err != nil {
		var unknown *maintenance.UnknownNozzleTypeError
		if errors.As(err, &unknown) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("failed to replace nozzle", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to replace nozzle")
		return
	}

	respondJSON(w, http.StatusOK, replaceResponse{Retired: retired, Status: s.tracker.Status()})
}
