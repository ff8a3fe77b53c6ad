// Package benfordscan tests generalized Collatz maps against Benford's Law.
//
// # Overview
//
// benfordscan iterates the three-parameter family of maps
//
//	f(n) = n / a        if a divides n
//	f(n) = b·n + c      otherwise
//
// over ranges of starting values, extracts the leading decimal digit of
// every trajectory term, and scores how closely the observed digit
// distribution matches Benford's Law, P(d) = log10(1 + 1/d). The classical
// Collatz map (a=2, b=3, c=1) conforms remarkably well; the interesting
// question is which of its neighbors do too, and how fast.
//
// # Architecture
//
// The package components:
//
//   - collatz.go    - Trajectory generation with cycle and magnitude guards
//   - digit.go      - Exact leading-digit extraction, digit histograms
//   - benford.go    - Goodness-of-fit battery (χ², MAD, KS, Dmix, mixing speed)
//   - trivial.go    - Degenerate-triple classification, hole sets
//   - scan.go       - Parameter-cube scanner
//   - rank.go       - Top-N selection by conformity and mixing speed
//   - checkpoint/   - Processed-starting-value store (BadgerDB / in-memory)
//   - sink/         - Structured JSON result persistence
//   - hardware/     - Worker-count and batch-size advisor
//   - batch/        - Parallel batch runner with checkpointing
//
// # Quick Start
//
// Score the classical map over the first ten thousand starting values:
//
//	hist := &benfordscan.Histogram{}
//	cfg := benfordscan.DefaultGeneratorConfig()
//	for n := int64(2); n <= 10000; n++ {
//	    hist.ObserveTrajectory(benfordscan.Generate(n, benfordscan.Params{A: 2, B: 3, C: 1}, cfg))
//	}
//	c := benfordscan.Analyze(hist)
//	fmt.Printf("MAD = %.5f (conforms: %v)\n", c.MAD, c.Conforms())
//
// Scan the cube around it, skipping degenerate triples:
//
//	scan := benfordscan.DefaultScanConfig()
//	scan.Side = 5
//	scan.Holes = benfordscan.TrivialSet(
//	    benfordscan.ParamRange{Min: 1, Max: 4},
//	    benfordscan.ParamRange{Min: 1, Max: 5},
//	    benfordscan.ParamRange{Min: -1, Max: 3},
//	)
//	report, err := benfordscan.Scan(ctx, scan)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range benfordscan.TopByConformity(report.Results, 5) {
//	    fmt.Printf("%s: MAD=%.5f over %d samples\n",
//	        r.Params, r.Conformity.MAD, r.Conformity.TotalSamples)
//	}
//
// # Mixing Speed
//
// MAD alone says how close a map's digits sit to Benford; it says nothing
// about how much evidence that closeness rests on. The digital mixing speed
//
//	(1 / MAD) · log10(samples)
//
// rewards tight conformity backed by large samples, which is the practical
// signature of a map that "mixes" its orbits across orders of magnitude
// quickly. It is undefined (and excluded from ranking) when MAD is exactly
// zero or there are no samples.
//
// # Exactness
//
// Trajectory terms grow past 1e50 before the divergence guard trips, far
// beyond float64's exact-integer range. All trajectory arithmetic is
// math/big, and leading digits are read from the exact decimal
// representation — a float log10 shortcut returns off-by-one digits at
// these magnitudes.
package benfordscan
