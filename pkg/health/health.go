// Package health reports process and engine health for the metrics server.
package health

import (
	"time"
)

// NewChecker creates a checker with no checks registered
func NewChecker() *Checker {
	return &Checker{
		checks: map[Probe]map[string]CheckFunc{
			ProbeHealth: {},
			ProbeReady:  {},
			ProbeLive:   {},
		},
		started: time.Now(),
	}
}

// Register adds a check to probe, replacing any check with the same name
func (c *Checker) Register(probe Probe, name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.checks[probe] == nil {
		c.checks[probe] = map[string]CheckFunc{}
	}
	c.checks[probe][name] = check
}

// Run performs every check registered for probe
func (c *Checker) Run(probe Probe) Response {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	response := Response{
		Status:    StatusHealthy,
		Timestamp: now,
		Checks:    make(map[string]Check, len(c.checks[probe])),
		Uptime:    now.Sub(c.started).Seconds(),
	}

	for name, checkFunc := range c.checks[probe] {
		start := time.Now()
		check := checkFunc()
		check.Name = name
		check.Duration = time.Since(start)
		check.LastChecked = start
		response.Checks[name] = check

		response.Status = worst(response.Status, check.Status)
	}
	return response
}

func worst(a, b Status) Status {
	switch {
	case a == StatusUnhealthy || b == StatusUnhealthy:
		return StatusUnhealthy
	case a == StatusDegraded || b == StatusDegraded:
		return StatusDegraded
	}
	return StatusHealthy
}
