package benfordscan

import (
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"
)

// TestLeadingDigit_Exact verifies digits across magnitudes, including
// values far beyond float64's exact-integer range.
func TestLeadingDigit_Exact(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"1", 1},
		{"5", 5},
		{"10", 1},
		{"100", 1},
		{"999999", 9},
		{"314159", 3},
		{"87654", 8},
		// 7e60: a float log10 path is off by one in this neighborhood
		// often enough to matter.
		{"7" + strings.Repeat("0", 60), 7},
	}
	for _, tc := range cases {
		n, ok := new(big.Int).SetString(tc.in, 10)
		if !ok {
			t.Fatalf("bad test literal %q", tc.in)
		}
		got, err := LeadingDigit(n)
		if err != nil {
			t.Fatalf("LeadingDigit(%s): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("LeadingDigit(%s) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

// TestLeadingDigit_DomainError verifies non-positive inputs fail loudly.
func TestLeadingDigit_DomainError(t *testing.T) {
	for _, n := range []int64{0, -10} {
		_, err := LeadingDigit(big.NewInt(n))
		if !errors.Is(err, ErrNonPositive) {
			t.Errorf("LeadingDigit(%d): err = %v, want ErrNonPositive", n, err)
		}
	}
	if _, err := LeadingDigit(nil); !errors.Is(err, ErrNonPositive) {
		t.Errorf("LeadingDigit(nil): err = %v, want ErrNonPositive", err)
	}
}

// TestHistogram_ObserveTrajectory verifies the qualifying-term contract:
// counts sum to the number of terms strictly greater than 1, and all nine
// digits are represented even at zero.
func TestHistogram_ObserveTrajectory(t *testing.T) {
	terms := []*big.Int{
		big.NewInt(6), big.NewInt(3), big.NewInt(10), big.NewInt(5),
		big.NewInt(16), big.NewInt(8), big.NewInt(4), big.NewInt(2),
		big.NewInt(1), // excluded: the convergence point
	}

	h := &Histogram{}
	h.ObserveTrajectory(terms)

	AssertHistogramComplete(t, h, 8)

	if got := h.Count(1); got != 2 {
		t.Errorf("Count(1) = %d, want 2 (10 and 16)", got)
	}
	if got := h.Count(7); got != 0 {
		t.Errorf("Count(7) = %d, want 0", got)
	}
	t.Logf("✓ 9 terms observed, 8 qualify (1 excluded)")
}

// TestHistogram_Empty verifies the zero value: nine zero-filled digits.
func TestHistogram_Empty(t *testing.T) {
	h := &Histogram{}
	AssertHistogramComplete(t, h, 0)
	for d := 1; d <= 9; d++ {
		if h.Count(d) != 0 {
			t.Errorf("Count(%d) = %d on an empty histogram", d, h.Count(d))
		}
	}
}

// TestHistogram_Observe verifies range checking on manual observation.
func TestHistogram_Observe(t *testing.T) {
	h := &Histogram{}
	if err := h.Observe(5); err != nil {
		t.Fatalf("Observe(5): %v", err)
	}
	for _, d := range []int{0, 10, -1} {
		if err := h.Observe(d); err == nil {
			t.Errorf("Observe(%d) accepted an out-of-range digit", d)
		}
	}
}

// TestHistogram_Merge verifies element-wise merge matches a single pass.
func TestHistogram_Merge(t *testing.T) {
	classical := Params{A: 2, B: 3, C: 1}
	cfg := DefaultGeneratorConfig()

	// One pass over 2..50.
	single := &Histogram{}
	for n := int64(2); n <= 50; n++ {
		single.ObserveTrajectory(Generate(n, classical, cfg))
	}

	// Two disjoint sub-ranges merged.
	lo, hi := &Histogram{}, &Histogram{}
	for n := int64(2); n <= 25; n++ {
		lo.ObserveTrajectory(Generate(n, classical, cfg))
	}
	for n := int64(26); n <= 50; n++ {
		hi.ObserveTrajectory(Generate(n, classical, cfg))
	}
	merged := &Histogram{}
	merged.Merge(lo)
	merged.Merge(hi)
	merged.Merge(nil) // no-op

	for d := 1; d <= 9; d++ {
		if merged.Count(d) != single.Count(d) {
			t.Errorf("digit %d: merged %d, single pass %d", d, merged.Count(d), single.Count(d))
		}
	}
	t.Logf("✓ Merged disjoint sub-ranges equal one full pass (%d samples)", single.Total())
}

// TestHistogram_JSONRoundTrip verifies the digit-keyed encoding with all
// nine keys present.
func TestHistogram_JSONRoundTrip(t *testing.T) {
	h := &Histogram{}
	for i := 0; i < 3; i++ {
		_ = h.Observe(1)
	}
	_ = h.Observe(9)

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var asMap map[string]uint64
	if err := json.Unmarshal(data, &asMap); err != nil {
		t.Fatalf("unmarshal into map: %v", err)
	}
	if len(asMap) != 9 {
		t.Errorf("encoded histogram has %d keys, want all 9", len(asMap))
	}

	var back Histogram
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Count(1) != 3 || back.Count(9) != 1 || back.Total() != 4 {
		t.Errorf("round trip lost counts: %+v", back)
	}

	if err := json.Unmarshal([]byte(`{"12": 1}`), &back); err == nil {
		t.Error("unmarshal accepted a non-digit key")
	}
}
