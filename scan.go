package benfordscan

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ScanConfig controls a parameter-cube scan.
type ScanConfig struct {
	Center Params // cube center (a0, b0, c0)

	// Side is the cube's side length and must be odd: the cube spans
	// half-width (Side-1)/2 on each axis around the center. The a-axis is
	// clipped to a ≥ 1; b and c are not clipped.
	Side int

	// Start and End bound the starting values, inclusive. The value 1 is
	// always skipped — it is the trivial fixed point and would contribute
	// nothing but its own leading digit.
	Start, End int64

	Generator GeneratorConfig

	// Holes are parameter triples excluded from the scan. Typically seeded
	// via TrivialSet; nil means no exclusions.
	Holes HoleSet

	// Logger receives per-triple progress and failure records.
	// Nil falls back to slog.Default().
	Logger *slog.Logger
}

// DefaultScanConfig scans the 3×3×3 cube around the classical map over
// starting values up to 1000.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Center:    Params{A: 2, B: 3, C: 1},
		Side:      3,
		Start:     2,
		End:       1000,
		Generator: DefaultGeneratorConfig(),
	}
}

// TripleResult is the per-triple outcome of a scan: either a scored
// analysis (Err == nil) or an explicit failure record (Err != nil, other
// fields zeroed). Failure-as-value keeps "continue on failure" an explicit
// branch in the aggregation loop instead of a side effect of recovery.
type TripleResult struct {
	Params     Params
	Start, End int64
	Histogram  *Histogram
	Conformity Conformity
	Elapsed    time.Duration
	Err        error
}

// ScanReport is the canonical outcome of one cube scan. Results follow
// enumeration order (a outer, b middle, c inner, ascending); ranking
// functions re-sort copies and rely on this order only for deterministic
// tie-breaking.
type ScanReport struct {
	Results []TripleResult
	Skipped int // triples excluded by the hole set
	Failed  int // triples that produced a failure record
}

// Scan enumerates every triple in the configured cube, skips holes, and
// runs the full generate → extract → analyze pipeline for each survivor.
//
// A scan always completes with whatever subset of triples succeeded: a
// per-triple failure is recorded and logged, never fatal. Cancellation is
// cooperative — the context is checked between triples and between
// starting values, and an interrupted triple's partial histogram is
// discarded rather than recorded, so the report never contains a
// half-scored entry.
func Scan(ctx context.Context, cfg ScanConfig) (ScanReport, error) {
	var report ScanReport

	if cfg.Side < 1 || cfg.Side%2 == 0 {
		return report, fmt.Errorf("cube side must be odd and positive, got %d", cfg.Side)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	half := int64(cfg.Side-1) / 2
	for a := cfg.Center.A - half; a <= cfg.Center.A+half; a++ {
		if a < 1 {
			continue
		}
		for b := cfg.Center.B - half; b <= cfg.Center.B+half; b++ {
			for c := cfg.Center.C - half; c <= cfg.Center.C+half; c++ {
				p := Params{A: a, B: b, C: c}
				if cfg.Holes.Contains(p) {
					report.Skipped++
					continue
				}

				result, err := analyzeTriple(ctx, p, cfg)
				if err != nil {
					// Cancellation, not a triple failure: the in-flight
					// triple is dropped wholesale.
					return report, err
				}
				if result.Err != nil {
					report.Failed++
					logger.Warn("triple failed, continuing scan",
						"params", p.String(), "err", result.Err)
				} else {
					logger.Debug("triple scored",
						"params", p.String(),
						"samples", result.Conformity.TotalSamples,
						"mad", result.Conformity.MAD,
						"elapsed", result.Elapsed)
				}
				report.Results = append(report.Results, result)
			}
		}
	}

	logger.Info("scan complete",
		"scored", len(report.Results)-report.Failed,
		"skipped", report.Skipped,
		"failed", report.Failed)
	return report, nil
}

// analyzeTriple runs one triple's full starting-range pass. The returned
// error is reserved for cancellation; anything wrong with the triple
// itself — including a panic out of an arithmetic edge case — comes back
// inside the TripleResult.
func analyzeTriple(ctx context.Context, p Params, cfg ScanConfig) (result TripleResult, err error) {
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = TripleResult{
				Params: p,
				Start:  cfg.Start,
				End:    cfg.End,
				Err:    fmt.Errorf("analysis panicked: %v", r),
			}
			err = nil
		}
	}()

	hist := &Histogram{}
	for n := cfg.Start; n <= cfg.End; n++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return TripleResult{}, ctxErr
		}
		if n == 1 {
			continue
		}
		trajectory := Generate(n, p, cfg.Generator)
		hist.ObserveTrajectory(trajectory)
	}

	return TripleResult{
		Params:     p,
		Start:      cfg.Start,
		End:        cfg.End,
		Histogram:  hist,
		Conformity: Analyze(hist),
		Elapsed:    time.Since(started),
	}, nil
}
