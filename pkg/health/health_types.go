package health

import (
	"sync"
	"time"
)

// Status is the health of one check or of the whole process
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Probe selects which endpoint a check contributes to
type Probe int

const (
	// ProbeHealth checks are reported on the general health endpoint
	ProbeHealth Probe = iota
	// ProbeReady checks gate readiness, e.g. a loaded montage
	ProbeReady
	// ProbeLive checks gate liveness
	ProbeLive
)

// Check is the result of one named check
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	Duration    time.Duration  `json:"duration_ms"`
}

// CheckFunc performs a check
type CheckFunc func() Check

// Response aggregates every check of one probe. The worst status wins.
type Response struct {
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	Uptime    float64          `json:"uptime_seconds"`
}

// Checker holds the registered checks per probe
type Checker struct {
	mu      sync.RWMutex
	checks  map[Probe]map[string]CheckFunc
	started time.Time
}
