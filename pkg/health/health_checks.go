package health

import (
	"fmt"
	"runtime"
)

// Alive always reports healthy
func Alive() CheckFunc {
	return func() Check {
		return Check{Status: StatusHealthy}
	}
}

// MontageCheck is unhealthy until a montage is loaded, and degraded while it
// has no renderable links
func MontageCheck(state func() (nodes, links int)) CheckFunc {
	return func() Check {
		nodes, links := state()
		check := Check{
			Details: map[string]any{"nodes": nodes, "links": links},
		}

		switch {
		case nodes == 0:
			check.Status = StatusUnhealthy
			check.Message = "No montage loaded"
		case links == 0:
			check.Status = StatusDegraded
			check.Message = "Montage has no links"
		default:
			check.Status = StatusHealthy
			check.Message = fmt.Sprintf("%d links over %d nodes", links, nodes)
		}
		return check
	}
}

// MemoryCheck is degraded once the heap exceeds limit bytes. A zero limit
// only reports usage.
func MemoryCheck(limit uint64) CheckFunc {
	return func() Check {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return memoryStatus(m.HeapAlloc, m.Sys, limit)
	}
}

func memoryStatus(heap, sys, limit uint64) Check {
	check := Check{
		Status: StatusHealthy,
		Details: map[string]any{
			"heap_alloc_bytes": heap,
			"sys_bytes":        sys,
		},
	}
	if limit > 0 && heap > limit {
		check.Status = StatusDegraded
		check.Message = "Heap above limit"
	}
	return check
}
