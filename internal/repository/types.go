package repository

import "time"

// Setting is a scalar key/value pair, written whole on every save.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Well-known setting keys.
const (
	// SettingRoutingID is the webhook routing identifier configured by the
	// settings-save flow. A cycle cannot run without it.
	SettingRoutingID = "routing_id"
	// SettingTrackerEnabled persists the tracker's on/off indicator across
	// restarts ("on" / "off").
	SettingTrackerEnabled = "tracker_enabled"
)
