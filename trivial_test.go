package benfordscan

import (
	"testing"
)

// TestIsTrivial covers each exclusion rule and the non-trivial cases the
// scanner must keep.
func TestIsTrivial(t *testing.T) {
	cases := []struct {
		p    Params
		want bool
		note string
	}{
		{Params{A: 1, B: 5, C: 3}, true, "a=1: pure division, dynamics collapse"},
		{Params{A: 2, B: 0, C: 0}, true, "b=0, c=0: multiply step lands on 0"},
		{Params{A: 2, B: 1, C: 0}, true, "b=1, c=0: multiply step is identity"},
		{Params{A: 3, B: 6, C: 0}, true, "c=0 and a|b: factor divided straight out"},
		{Params{A: 2, B: -3, C: -1}, true, "b<0, c<0: immediately negative"},
		{Params{A: 5, B: 5, C: 1}, false, "a|b but c≠0: survives"},
		{Params{A: 2, B: 3, C: 1}, false, "the classical map"},
		{Params{A: 2, B: -3, C: 7}, false, "negative b with positive c can stay positive"},
		{Params{A: 3, B: 0, C: 5}, false, "b=0 with c≠0: constant step, not excluded"},
	}
	for _, tc := range cases {
		if got := IsTrivial(tc.p); got != tc.want {
			t.Errorf("IsTrivial(%v) = %v, want %v (%s)", tc.p, got, tc.want, tc.note)
		}
	}
}

// TestTrivialSet verifies bulk enumeration and its idempotence: the same
// cuboid always yields the identical hole set.
func TestTrivialSet(t *testing.T) {
	aR := ParamRange{Min: 1, Max: 3}
	bR := ParamRange{Min: -2, Max: 4}
	cR := ParamRange{Min: -2, Max: 2}

	first := TrivialSet(aR, bR, cR)
	second := TrivialSet(aR, bR, cR)

	if len(first) != len(second) {
		t.Fatalf("two enumerations differ in size: %d vs %d", len(first), len(second))
	}
	for p := range first {
		if !second.Contains(p) {
			t.Errorf("triple %v present in first enumeration only", p)
		}
	}

	// Every a=1 slice of the cuboid is trivial by rule 1.
	for b := bR.Min; b <= bR.Max; b++ {
		for c := cR.Min; c <= cR.Max; c++ {
			if !first.Contains(Params{A: 1, B: b, C: c}) {
				t.Errorf("a=1 triple (1,%d,%d) missing from hole set", b, c)
			}
		}
	}

	// And the classical map never is.
	if first.Contains(Params{A: 2, B: 3, C: 1}) {
		t.Error("classical map classified as a hole")
	}

	t.Logf("✓ %d trivial triples in a %d-triple cuboid, enumeration idempotent",
		len(first), (aR.Max-aR.Min+1)*(bR.Max-bR.Min+1)*(cR.Max-cR.Min+1))
}
