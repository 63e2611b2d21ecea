// Package metrics provides process-level measurements used by the CLI to
// report the cost of a compilation run alongside the plan's own operation
// counts.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
	TotalAlloc   uint64 // cumulative bytes allocated
}

// MemoryDelta is the difference between two snapshots bracketing a unit of
// work, typically a single plan compilation.
type MemoryDelta struct {
	AllocBytes uint64 // bytes allocated during the interval
	GCCycles   uint32 // GC cycles completed during the interval
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
		TotalAlloc:   m.TotalAlloc,
	}
}

// Delta computes the allocation activity between before and a fresh
// snapshot. TotalAlloc is monotonic, so the subtraction is safe.
func (mc *MemoryCollector) Delta(before MemorySnapshot) MemoryDelta {
	after := mc.Snapshot()
	return MemoryDelta{
		AllocBytes: after.TotalAlloc - before.TotalAlloc,
		GCCycles:   after.NumGC - before.NumGC,
	}
}
