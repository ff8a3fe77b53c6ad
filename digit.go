package benfordscan

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// ErrNonPositive is returned when a leading digit is requested for a value
// outside the positive-integer domain. Digit extraction fails loudly where
// trajectory generation degrades to a no-op: a wrong digit would silently
// poison the statistics, while an empty trajectory just contributes nothing.
var ErrNonPositive = errors.New("leading digit requires a positive integer")

// LeadingDigit returns the most significant decimal digit (1-9) of n.
//
// The digit is read off the exact decimal representation. A float log10
// round-trip loses precision somewhere past 2^53 and starts returning
// off-by-one digits; trajectories here routinely reach 1e50, so only the
// exact path is acceptable.
func LeadingDigit(n *big.Int) (int, error) {
	if n == nil || n.Sign() <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrNonPositive, n)
	}
	// Text(10) never has a leading zero or sign for a positive value.
	return int(n.Text(10)[0] - '0'), nil
}

// Histogram counts leading-digit occurrences for digits 1 through 9.
// All nine digits are always present (zero-filled); iteration and encoding
// order is fixed ascending 1..9.
//
// The zero value is ready to use.
type Histogram struct {
	counts [9]uint64
}

// Observe increments the count for digit d. Digits outside 1..9 are
// rejected — the extractor can only produce 1..9, so anything else is a
// caller bug worth surfacing.
func (h *Histogram) Observe(d int) error {
	if d < 1 || d > 9 {
		return fmt.Errorf("digit %d out of range 1..9", d)
	}
	h.counts[d-1]++
	return nil
}

// ObserveTrajectory extracts and counts the leading digit of every
// trajectory term greater than 1. Terms equal to 1 are excluded (their
// leading digit is always 1, which biases the tally toward the convergence
// point), and non-positive terms contribute nothing.
func (h *Histogram) ObserveTrajectory(trajectory []*big.Int) {
	one := big.NewInt(1)
	for _, term := range trajectory {
		if term.Cmp(one) <= 0 {
			continue
		}
		d, err := LeadingDigit(term)
		if err != nil {
			continue
		}
		h.counts[d-1]++
	}
}

// Count returns the occurrences of digit d (1-9). Out-of-range digits
// report zero.
func (h *Histogram) Count(d int) uint64 {
	if d < 1 || d > 9 {
		return 0
	}
	return h.counts[d-1]
}

// Total returns the number of observations across all nine digits.
func (h *Histogram) Total() uint64 {
	var total uint64
	for _, c := range h.counts {
		total += c
	}
	return total
}

// Merge adds other's counts element-wise. Histograms accumulated over
// disjoint starting-value ranges merge into exactly the histogram a single
// pass would have produced, which is what makes batch parallelism safe.
func (h *Histogram) Merge(other *Histogram) {
	if other == nil {
		return
	}
	for i := range h.counts {
		h.counts[i] += other.counts[i]
	}
}

// Proportions returns the observed frequency of each digit (index 0 holds
// digit 1). A zero-sample histogram yields all zeros.
func (h *Histogram) Proportions() [9]float64 {
	var props [9]float64
	total := h.Total()
	if total == 0 {
		return props
	}
	for i, c := range h.counts {
		props[i] = float64(c) / float64(total)
	}
	return props
}

// MarshalJSON encodes the histogram as a digit-keyed mapping
// {"1": n1, ..., "9": n9} with all nine keys present.
func (h *Histogram) MarshalJSON() ([]byte, error) {
	m := make(map[string]uint64, 9)
	for d := 1; d <= 9; d++ {
		m[strconv.Itoa(d)] = h.counts[d-1]
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes the digit-keyed mapping produced by MarshalJSON.
// Missing digits load as zero; unknown keys are rejected.
func (h *Histogram) UnmarshalJSON(data []byte) error {
	var m map[string]uint64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var counts [9]uint64
	for k, v := range m {
		d, err := strconv.Atoi(k)
		if err != nil || d < 1 || d > 9 {
			return fmt.Errorf("histogram key %q is not a digit 1..9", k)
		}
		counts[d-1] = v
	}
	h.counts = counts
	return nil
}
