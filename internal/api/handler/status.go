// Package handler implements the daemon's small HTTP surface: status for
// the indicator and the settings-save flow that re-arms tracking.
package handler

import (
	"net/http"

	"github.com/DiabolusGX/snack-track/internal/tracker"
)

// StatusHandler reports the tracker indicator and last cycle summary.
type StatusHandler struct {
	Tracker *tracker.Tracker
}

func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"indicator": h.Tracker.Indicator().String(),
		"lastCycle": h.Tracker.LastCycle(),
	})
}
