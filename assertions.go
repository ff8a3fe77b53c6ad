package benfordscan

import (
	"testing"
)

// ConformityAssertionConfig contains thresholds for Benford conformity
// properties.
type ConformityAssertionConfig struct {
	// MAD below this value passes (Nigrini's marginal cutoff)
	MaxMAD float64

	// Chi-squared p-value above this value passes
	MinPValue float64

	// KS D-statistic below this value passes
	MaxKS float64

	// Minimum sample count for the statistics to mean anything
	MinSamples uint64
}

// DefaultConformityAssertionConfig returns conservative thresholds.
func DefaultConformityAssertionConfig() ConformityAssertionConfig {
	return ConformityAssertionConfig{
		MaxMAD:     MADConformityThreshold, // 0.015
		MinPValue:  0.05,                   // conventional significance level
		MaxKS:      0.05,                   // 5% CDF divergence
		MinSamples: 1000,
	}
}

// AssertConforms verifies a conformity snapshot indicates agreement with
// Benford's Law.
//
// Mathematical property:
//
//	MAD < 0.015 and the chi-squared test does not reject at the 5% level.
func AssertConforms(t *testing.T, c Conformity, cfg ConformityAssertionConfig) {
	t.Helper()

	if c.TotalSamples < cfg.MinSamples {
		t.Fatalf("Too few samples for a meaningful conformity check: %d (min: %d)",
			c.TotalSamples, cfg.MinSamples)
	}

	if c.MAD >= cfg.MaxMAD {
		t.Errorf("MAD too high: %.5f (max: %.5f)\n"+
			"Observed digit proportions deviate from Benford's Law.",
			c.MAD, cfg.MaxMAD)
	}

	if c.PValue < cfg.MinPValue {
		t.Errorf("Chi-squared rejects Benford: p = %.5f (min: %.5f), χ² = %.4f",
			c.PValue, cfg.MinPValue, c.ChiSquared)
	}

	if c.KSStatistic >= cfg.MaxKS {
		t.Errorf("KS D-statistic too high: %.5f (max: %.5f)\n"+
			"Cumulative digit distribution drifts from Benford's.",
			c.KSStatistic, cfg.MaxKS)
	}

	t.Logf("✓ Conforms to Benford: MAD = %.5f (threshold: %.5f)", c.MAD, cfg.MaxMAD)
	t.Logf("  χ² = %.4f, p = %.5f, KS D = %.5f, Dmix = %.5f over %d samples",
		c.ChiSquared, c.PValue, c.KSStatistic, c.Dmix, c.TotalSamples)
}

// AssertHistogramComplete verifies the digit histogram invariant: all nine
// digits present and the counts summing to the expected total.
func AssertHistogramComplete(t *testing.T, h *Histogram, wantTotal uint64) {
	t.Helper()

	var sum uint64
	for d := 1; d <= 9; d++ {
		sum += h.Count(d)
	}

	if sum != h.Total() {
		t.Errorf("Per-digit counts sum to %d but Total() reports %d", sum, h.Total())
	}
	if sum != wantTotal {
		t.Errorf("Histogram holds %d observations, want %d", sum, wantTotal)
	}

	t.Logf("✓ Histogram complete: %d observations across digits 1..9", sum)
}

// AssertSentinels verifies the degenerate-statistics contract for a
// zero-sample analysis: documented sentinel values, never NaN leaking into
// a comparison the ranking layer might make.
func AssertSentinels(t *testing.T, c Conformity) {
	t.Helper()

	if c.TotalSamples != 0 {
		t.Fatalf("Sentinel check requires a zero-sample result, got %d samples", c.TotalSamples)
	}
	if c.PValue != 1.0 {
		t.Errorf("Zero-sample p-value = %v, want sentinel 1.0", c.PValue)
	}
	if c.MAD != 1.0 {
		t.Errorf("Zero-sample MAD = %v, want sentinel 1.0", c.MAD)
	}
	if c.MixingSpeedDefined {
		t.Errorf("Zero-sample mixing speed reported as defined")
	}

	t.Logf("✓ Degenerate statistics resolve to sentinels (p = 1.0, MAD = 1.0, speed undefined)")
}
