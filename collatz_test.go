package benfordscan

import (
	"math/big"
	"testing"
)

func toInt64s(t *testing.T, trajectory []*big.Int) []int64 {
	t.Helper()
	out := make([]int64, len(trajectory))
	for i, v := range trajectory {
		if !v.IsInt64() {
			t.Fatalf("trajectory term %s does not fit int64", v)
		}
		out[i] = v.Int64()
	}
	return out
}

func assertTrajectory(t *testing.T, got []*big.Int, want []int64) {
	t.Helper()
	gotInts := toInt64s(t, got)
	if len(gotInts) != len(want) {
		t.Fatalf("trajectory length %d, want %d\ngot:  %v\nwant: %v",
			len(gotInts), len(want), gotInts, want)
	}
	for i := range want {
		if gotInts[i] != want[i] {
			t.Fatalf("trajectory[%d] = %d, want %d\ngot:  %v\nwant: %v",
				i, gotInts[i], want[i], gotInts, want)
		}
	}
}

// TestGenerate_ClassicalSix verifies the canonical 3n+1 orbit of 6.
// The classical map applies no divide-out shortcut, so the full
// 16, 8, 4, 2, 1 tail must be present.
func TestGenerate_ClassicalSix(t *testing.T) {
	got := Generate(6, Params{A: 2, B: 3, C: 1}, DefaultGeneratorConfig())
	assertTrajectory(t, got, []int64{6, 3, 10, 5, 16, 8, 4, 2, 1})
	t.Logf("✓ Classical orbit of 6 intact, no shortcut applied")
}

// TestGenerate_ClassicalNineteen verifies a longer classical orbit.
func TestGenerate_ClassicalNineteen(t *testing.T) {
	got := Generate(19, Params{A: 2, B: 3, C: 1}, DefaultGeneratorConfig())
	assertTrajectory(t, got, []int64{
		19, 58, 29, 88, 44, 22, 11, 34, 17, 52, 26,
		13, 40, 20, 10, 5, 16, 8, 4, 2, 1,
	})
}

// TestGenerate_IterationCap verifies the cap bounds the trajectory to
// exactly cap+1 elements: the seed plus the computed steps.
func TestGenerate_IterationCap(t *testing.T) {
	got := Generate(27, Params{A: 2, B: 3, C: 1}, GeneratorConfig{MaxIterations: 5})
	assertTrajectory(t, got, []int64{27, 82, 41, 124, 62, 31})

	if len(got) != 6 {
		t.Errorf("capped trajectory has %d elements, want 6", len(got))
	}
	t.Logf("✓ Cap of 5 steps yields 6 elements: 27 .. 31")
}

// TestGenerate_ClassicalConvergence verifies the first/last-element
// contract over a sweep: first element is the seed, last is 1.
func TestGenerate_ClassicalConvergence(t *testing.T) {
	classical := Params{A: 2, B: 3, C: 1}
	cfg := GeneratorConfig{MaxIterations: 10000}

	for n := int64(1); n <= 100; n++ {
		trajectory := Generate(n, classical, cfg)
		if len(trajectory) == 0 {
			t.Fatalf("n=%d: empty trajectory for a positive start", n)
		}
		if first := trajectory[0].Int64(); first != n {
			t.Errorf("n=%d: first element is %d, want the seed", n, first)
		}
		if last := trajectory[len(trajectory)-1].Int64(); last != 1 {
			t.Errorf("n=%d: last element is %d, want 1", n, last)
		}
	}
	t.Logf("✓ All starts 1..100 converge to 1 under the classical map")
}

// TestGenerate_Shortcut verifies the maximal divide-out shortcut for
// non-classical parameters: 3 → 5·3+1 = 16, and 16 stays (not divisible
// by 5), while under (2,5,1) the even factors come out in one step.
func TestGenerate_Shortcut(t *testing.T) {
	// (2,5,1): 3 → 16 → 16/2/2/2/2 = 1 in a single shortcut step.
	got := Generate(3, Params{A: 2, B: 5, C: 1}, DefaultGeneratorConfig())
	assertTrajectory(t, got, []int64{3, 1})
	t.Logf("✓ Shortcut divides 16 down to 1 in one step under (2,5,1)")
}

// TestGenerate_CycleDetection verifies a non-converging orbit stops when a
// value repeats, with the repeated value appended once to make the cycle
// closure visible.
func TestGenerate_CycleDetection(t *testing.T) {
	// (2,3,-1) with shortcut: 5 → 3·5-1 = 14 → 7; 7 → 20 → 5. Cycle.
	got := Generate(5, Params{A: 2, B: 3, C: -1}, DefaultGeneratorConfig())
	assertTrajectory(t, got, []int64{5, 7, 5})
	t.Logf("✓ Cycle 5 → 7 → 5 detected and closed explicitly")
}

// TestGenerate_MagnitudeGuard verifies divergent orbits stop once a term
// exceeds 1e50, keeping the offending term.
func TestGenerate_MagnitudeGuard(t *testing.T) {
	// (3,3,1) from 2: every term after the seed is ≡ 1 (mod 3), so the
	// division branch and the shortcut never fire and the orbit grows by
	// a factor of ~3 per step. ~105 steps to pass 1e50.
	cfg := GeneratorConfig{MaxIterations: 10000}
	got := Generate(2, Params{A: 3, B: 3, C: 1}, cfg)

	if len(got) >= cfg.MaxIterations {
		t.Fatalf("trajectory ran to the cap (%d elements); guard never fired", len(got))
	}

	last := got[len(got)-1]
	if last.CmpAbs(magnitudeCeiling) <= 0 {
		t.Errorf("last element %s does not exceed the ceiling", last)
	}
	for _, term := range got[:len(got)-1] {
		if term.CmpAbs(magnitudeCeiling) > 0 {
			t.Errorf("non-final term %s exceeds the ceiling", term)
		}
	}
	t.Logf("✓ Divergence guard tripped after %d elements; offender kept", len(got))
}

// TestGenerate_DegenerateStarts verifies invalid starts are no-ops, not
// errors: the scanner sweeps ranges without per-call guards.
func TestGenerate_DegenerateStarts(t *testing.T) {
	cases := []struct {
		name string
		n    int64
		p    Params
	}{
		{"zero start", 0, Params{A: 2, B: 3, C: 1}},
		{"negative start", -10, Params{A: 2, B: 3, C: 1}},
		{"zero modulus", 5, Params{A: 0, B: 3, C: 1}},
		{"negative modulus", 5, Params{A: -2, B: 3, C: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Generate(tc.n, tc.p, DefaultGeneratorConfig()); len(got) != 0 {
				t.Errorf("Generate(%d, %v) = %v, want empty", tc.n, tc.p, got)
			}
		})
	}
}

// TestGenerate_SeedOne verifies the trivial fixed point yields the
// one-element trajectory, never an empty one.
func TestGenerate_SeedOne(t *testing.T) {
	got := Generate(1, Params{A: 2, B: 3, C: 1}, DefaultGeneratorConfig())
	assertTrajectory(t, got, []int64{1})
}

// TestParams_IsClassical pins down the shortcut-suppression rule: exact
// tuple equality with (2,3,1), nothing looser.
func TestParams_IsClassical(t *testing.T) {
	if !(Params{A: 2, B: 3, C: 1}).IsClassical() {
		t.Error("(2,3,1) must be classical")
	}
	for _, p := range []Params{
		{A: 2, B: 3, C: 2},
		{A: 2, B: 5, C: 1},
		{A: 3, B: 3, C: 1},
	} {
		if p.IsClassical() {
			t.Errorf("%v wrongly classified classical", p)
		}
	}
}
