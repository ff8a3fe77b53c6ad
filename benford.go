package benfordscan

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"
)

// MADConformityThreshold is the conventional cutoff below which the Mean
// Absolute Deviation indicates good conformity with Benford's Law.
//
// Interpretation (Nigrini's scale for first digits):
//   - MAD < 0.006:  close conformity
//   - MAD < 0.012:  acceptable conformity
//   - MAD < 0.015:  marginally acceptable — the cutoff used here
//   - MAD ≥ 0.015:  nonconformity
//
// This is a reporting convention only; nothing in the analyzer branches
// on it.
const MADConformityThreshold = 0.015

// benfordDegreesOfFreedom: nine digit categories, fully specified expected
// distribution, zero estimated parameters.
const benfordDegreesOfFreedom = 8

var (
	benfordOnce  sync.Once
	benfordProbs [9]float64
)

// BenfordProbabilities returns the theoretical leading-digit distribution,
// P(d) = log10(1 + 1/d) for d = 1..9 (index 0 holds digit 1).
//
// The table is computed once and shared; treat it as read-only.
func BenfordProbabilities() [9]float64 {
	benfordOnce.Do(func() {
		for d := 1; d <= 9; d++ {
			benfordProbs[d-1] = math.Log10(1 + 1/float64(d))
		}
	})
	return benfordProbs
}

// Conformity is the full goodness-of-fit snapshot for one digit histogram
// against Benford's Law. The five statistics are independent — none is
// derived destructively from another, so callers may inspect any subset.
//
// Zero-sample sentinels: a histogram with no observations yields
// PValue = 1.0, MAD = 1.0, KSStatistic = 1.0, Dmix = 1.0, ChiSquared = NaN
// and an undefined mixing speed. Degenerate inputs are never an error;
// they resolve to values the ranking layer can filter explicitly.
type Conformity struct {
	TotalSamples uint64  // observations behind the statistics
	ChiSquared   float64 // chi-squared statistic vs expected counts (NaN when TotalSamples == 0)
	PValue       float64 // chi-squared p-value, 8 degrees of freedom
	MAD          float64 // mean absolute deviation of proportions, in [0,1]
	KSStatistic  float64 // Kolmogorov-Smirnov D over the digit CDF
	Dmix         float64 // total variation distance, in [0,1]

	// MixingSpeed is (1/MAD) · log10(TotalSamples): how tightly the map's
	// output settles onto Benford per order of magnitude of evidence.
	// Meaningful only when MixingSpeedDefined is true; NaN otherwise.
	MixingSpeed        float64
	MixingSpeedDefined bool // false when MAD = 0 or TotalSamples = 0
}

// Conforms reports whether the MAD falls under the conventional
// conformity threshold.
func (c Conformity) Conforms() bool {
	return c.MAD < MADConformityThreshold
}

// Analyze computes the full conformity snapshot for a histogram.
func Analyze(h *Histogram) Conformity {
	total := h.Total()
	if total == 0 {
		return Conformity{
			TotalSamples: 0,
			ChiSquared:   math.NaN(),
			PValue:       1.0,
			MAD:          1.0,
			KSStatistic:  1.0,
			Dmix:         1.0,
			MixingSpeed:  math.NaN(),
		}
	}

	expected := BenfordProbabilities()
	observed := h.Proportions()
	n := float64(total)

	var (
		chiSquared  float64
		absDevSum   float64
		ksStatistic float64
		observedCDF float64
		expectedCDF float64
	)
	for i := 0; i < 9; i++ {
		expCount := n * expected[i]
		obsCount := float64(h.counts[i])
		diff := obsCount - expCount
		chiSquared += diff * diff / expCount

		absDevSum += math.Abs(observed[i] - expected[i])

		observedCDF += observed[i]
		expectedCDF += expected[i]
		if d := math.Abs(observedCDF - expectedCDF); d > ksStatistic {
			ksStatistic = d
		}
	}

	mad := absDevSum / 9
	dmix := absDevSum / 2

	chi2 := distuv.ChiSquared{K: benfordDegreesOfFreedom}
	pValue := chi2.Survival(chiSquared)

	c := Conformity{
		TotalSamples: total,
		ChiSquared:   chiSquared,
		PValue:       pValue,
		MAD:          mad,
		KSStatistic:  ksStatistic,
		Dmix:         dmix,
		MixingSpeed:  math.NaN(),
	}
	if mad > 0 {
		c.MixingSpeed = (1 / mad) * math.Log10(n)
		c.MixingSpeedDefined = true
	}
	return c
}
