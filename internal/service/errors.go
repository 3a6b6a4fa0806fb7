package service

import "errors"

var (
	// ErrRoutingNotConfigured indicates no webhook routing identifier has
	// been saved yet; the tracker cannot run a cycle without one.
	ErrRoutingNotConfigured = errors.New("service: routing id not configured")
)
