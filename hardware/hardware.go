// Package hardware recommends worker counts and batch sizes from the
// machine's actual capacity. Everything here is a tuning hint: a wrong
// recommendation costs throughput, never correctness.
package hardware

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/mem"
)

// Advisor holds capacity limits with safety headroom already applied.
type Advisor struct {
	// Workers is the recommended number of concurrent analysis workers.
	// Always ≥ 1.
	Workers int

	// MemoryCeilingBytes is the budget for in-flight trajectory data.
	MemoryCeilingBytes uint64
}

// Config controls how the advisor probes the machine.
type Config struct {
	// MaxWorkers overrides CPU detection when > 0.
	MaxWorkers int

	// MaxMemoryBytes overrides memory detection when > 0.
	MaxMemoryBytes uint64

	// CoreSafetyFactor scales the detected core count (default 0.8):
	// the scan should not starve the rest of the machine.
	CoreSafetyFactor float64

	// MemorySafetyFactor scales the detected available memory
	// (default 0.8).
	MemorySafetyFactor float64
}

// DefaultConfig leaves 20% headroom on both axes.
func DefaultConfig() Config {
	return Config{
		CoreSafetyFactor:   0.8,
		MemorySafetyFactor: 0.8,
	}
}

// Detect probes the machine and returns an advisor. Probing failures fall
// back to conservative fixed limits rather than erroring: capacity hints
// must never block a scan.
func Detect(cfg Config) Advisor {
	if cfg.CoreSafetyFactor <= 0 || cfg.CoreSafetyFactor > 1 {
		cfg.CoreSafetyFactor = 0.8
	}
	if cfg.MemorySafetyFactor <= 0 || cfg.MemorySafetyFactor > 1 {
		cfg.MemorySafetyFactor = 0.8
	}

	workers := cfg.MaxWorkers
	if workers <= 0 {
		workers = int(float64(runtime.NumCPU()) * cfg.CoreSafetyFactor)
	}
	if workers < 1 {
		workers = 1
	}

	ceiling := cfg.MaxMemoryBytes
	if ceiling == 0 {
		if vm, err := mem.VirtualMemory(); err == nil {
			ceiling = uint64(float64(vm.Available) * cfg.MemorySafetyFactor)
		} else {
			ceiling = 1 << 30 // probe failed: assume a modest 1 GiB
		}
	}

	return Advisor{
		Workers:            workers,
		MemoryCeilingBytes: ceiling,
	}
}

// bytesPerTerm is a rough cost of one in-flight trajectory term: a big.Int
// around 1e50 plus slice and cycle-set overhead.
const bytesPerTerm = 100

// expectedTermsPerStart caps the estimate: most trajectories terminate
// long before the iteration cap.
const expectedTermsPerStart = 200

// BatchSize divides the memory ceiling by the estimated per-start cost to
// pick how many starting values one batch may hold in flight. The
// estimate is deliberately crude — this bounds memory, it does not
// schedule work — and the result is floored at 10 so degenerate ceilings
// still make progress.
func (a Advisor) BatchSize(maxIterations int) int64 {
	terms := int64(maxIterations)
	if terms > expectedTermsPerStart {
		terms = expectedTermsPerStart
	}
	if terms < 1 {
		terms = 1
	}

	perStart := terms * bytesPerTerm * int64(a.Workers)
	size := int64(a.MemoryCeilingBytes) / perStart
	if size < 10 {
		size = 10
	}
	return size
}
