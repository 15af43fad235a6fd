// benchmark.go
// Resource usage of any tool run (-benchmark global flag)
// Measures execution time and memory usage for any wrapped function

package benchmark

import (
	"os"
	"runtime"
	"time"

	common "peptide_design_go/utils"
)

// Report is what one measured call used
type Report struct {
	Elapsed         time.Duration
	AllocMB         float64
	TotalAllocMB    float64
	HeapMB          float64
	GCCycles        uint32
	CPUCores        int
	GoroutinesStart int
	GoroutinesEnd   int
}

// Measure runs f once and reports its runtime and memory usage
func Measure(f func()) Report {
	runtime.GC()
	var memStart, memEnd runtime.MemStats
	runtime.ReadMemStats(&memStart)
	start := time.Now()
	startGoroutines := runtime.NumGoroutine()

	f()

	elapsed := time.Since(start)
	runtime.ReadMemStats(&memEnd)

	alloc := float64(0)
	if memEnd.Alloc > memStart.Alloc {
		alloc = float64(memEnd.Alloc-memStart.Alloc) / 1024.0 / 1024.0
	}
	return Report{
		Elapsed:         elapsed,
		AllocMB:         alloc,
		TotalAllocMB:    float64(memEnd.TotalAlloc-memStart.TotalAlloc) / 1024.0 / 1024.0,
		HeapMB:          float64(memEnd.HeapAlloc) / 1024.0 / 1024.0,
		GCCycles:        memEnd.NumGC - memStart.NumGC,
		CPUCores:        runtime.NumCPU(),
		GoroutinesStart: startGoroutines,
		GoroutinesEnd:   runtime.NumGoroutine(),
	}
}

// Run wraps any function to measure its runtime and memory usage.
func Run(label string, f func()) {
	logger := common.NewLogger("Benchmark")
	logger.Info("Running: %s", label)

	// Snapshot environment info
	logger.Info("Timestamp: %s", time.Now().Format(time.RFC1123))
	if host, err := os.Hostname(); err == nil {
		logger.Info("Hostname: %s", host)
	}
	logger.Info("Go Version: %s", runtime.Version())
	logger.Info("OS/Arch: %s/%s", runtime.GOOS, runtime.GOARCH)

	r := Measure(f)

	// Report resource usage
	logger.Info("Time Elapsed: %v", r.Elapsed)
	logger.Info("Memory Used: %.2f MB", r.AllocMB)
	logger.Info("Total Allocated: %.2f MB", r.TotalAllocMB)
	logger.Info("Peak Heap: %.2f MB", r.HeapMB)
	logger.Info("GC Cycles: %d", r.GCCycles)
	logger.Info("CPU Cores: %d", r.CPUCores)
	logger.Info("Goroutines Started: %d -> %d", r.GoroutinesStart, r.GoroutinesEnd)
	logger.Info("----------------------------------------")
}
