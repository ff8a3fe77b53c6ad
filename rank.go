package benfordscan

import (
	"sort"
)

// TopByConformity returns the n best-conforming results, ascending by MAD.
// Failure records are excluded; ties keep enumeration order (stable sort
// over a copy — the canonical collection is never reordered).
func TopByConformity(results []TripleResult, n int) []TripleResult {
	ranked := scored(results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Conformity.MAD < ranked[j].Conformity.MAD
	})
	return truncate(ranked, n)
}

// TopByMixingSpeed returns the n fastest-mixing results, descending by
// digital mixing speed. Results whose mixing speed is undefined (zero
// samples or exact-zero MAD) are excluded before sorting, so the
// comparator never sees a NaN.
func TopByMixingSpeed(results []TripleResult, n int) []TripleResult {
	ranked := scored(results)
	filtered := ranked[:0]
	for _, r := range ranked {
		if r.Conformity.MixingSpeedDefined {
			filtered = append(filtered, r)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Conformity.MixingSpeed > filtered[j].Conformity.MixingSpeed
	})
	return truncate(filtered, n)
}

// scored copies the successful results, dropping failure records.
func scored(results []TripleResult) []TripleResult {
	out := make([]TripleResult, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r)
		}
	}
	return out
}

func truncate(results []TripleResult, n int) []TripleResult {
	if n < 0 {
		n = 0
	}
	if len(results) > n {
		return results[:n]
	}
	return results
}
