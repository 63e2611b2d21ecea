package config

import "runtime"

// Threshold resolution chain (highest priority first):
//  1. CLI flags (-base-threshold, -parallel-depth)
//  2. Environment variables (CONVPLAN_BASE_THRESHOLD, CONVPLAN_PARALLEL_DEPTH)
//  3. Adaptive hardware estimation (this file, parallel depth only)
//  4. Static defaults in the plan package

// ApplyAdaptiveThresholds fills in threshold values that were left at their
// "ask the system" sentinel. A ParallelDepth of -1 is replaced by an estimate
// derived from the CPU count; an explicit value (including 0, sequential) is
// preserved.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.ParallelDepth < 0 {
		cfg.ParallelDepth = EstimateParallelDepth()
	}
	return cfg
}

// EstimateParallelDepth provides a heuristic estimate of a useful parallel
// recursion depth for the Karatsuba builder without running benchmarks.
// Each additional level spawns up to 3x more goroutines, so the depth grows
// logarithmically with the core count.
func EstimateParallelDepth() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return 0 // goroutine overhead dominates on small machines
	case numCPU <= 8:
		return 1 // 3 concurrent sub-builds
	case numCPU <= 26:
		return 2 // up to 9 concurrent sub-builds
	default:
		return 3 // up to 27 concurrent sub-builds
	}
}
