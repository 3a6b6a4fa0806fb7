package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/DiabolusGX/snack-track/internal/notifier"
	"github.com/DiabolusGX/snack-track/internal/service"
	"github.com/DiabolusGX/snack-track/internal/tracker"
)

// SettingsHandler saves tracker settings and re-arms the indicator. The
// caller treats the literal body "OK" as the only success signal, so the
// handler responds with exactly that.
type SettingsHandler struct {
	Settings *service.Settings
	Tracker  *tracker.Tracker
	Logger   *slog.Logger
}

type saveSettingsRequest struct {
	RoutingID string `json:"routingId"`
}

func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.RoutingID = strings.TrimSpace(req.RoutingID)
	if req.RoutingID == "" {
		respondError(w, http.StatusBadRequest, "routingId is required")
		return
	}

	ctx := r.Context()
	if err := h.Settings.SetRoutingID(ctx, req.RoutingID); err != nil {
		h.logger().Error("settings save failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	h.Tracker.SetIndicator(ctx, tracker.IndicatorOn)

	w.Write([]byte(notifier.OKSentinel))
}

func (h *SettingsHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
