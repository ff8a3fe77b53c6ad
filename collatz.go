package benfordscan

import (
	"fmt"
	"math/big"
)

// Params defines one member of the generalized Collatz family:
//
//	f(n) = n / a        if a divides n
//	f(n) = b·n + c      otherwise
//
// The classical Collatz map is Params{A: 2, B: 3, C: 1}. Everything else in
// the cube around it is an experiment.
type Params struct {
	A int64 // division modulus (a ≥ 1 for a valid map)
	B int64 // multiplier for the non-divisible step
	C int64 // additive offset for the non-divisible step
}

// IsClassical reports whether p is exactly the classical (2,3,1) map.
//
// The distinction matters for the divide-out shortcut: the classical map
// applies no shortcut (so trajectories keep the familiar 16, 8, 4, 2, 1
// tail), while every other parameter set divides the multiply-step result
// by a as many times as it stays exactly divisible. This is the one rule
// the research notes kept flip-flopping on; here it is pinned down to
// exact tuple equality.
func (p Params) IsClassical() bool {
	return p.A == 2 && p.B == 3 && p.C == 1
}

func (p Params) String() string {
	return fmt.Sprintf("C(%d,%d,%d)", p.A, p.B, p.C)
}

// GeneratorConfig controls trajectory generation.
type GeneratorConfig struct {
	// MaxIterations caps the number of computed steps. A trajectory never
	// holds more than MaxIterations+1 elements (the seed plus the steps).
	MaxIterations int
}

// DefaultGeneratorConfig returns the defaults used by the scanner.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxIterations: 1000,
	}
}

// magnitudeCeiling is the divergence guard: 1e50. A trajectory term whose
// absolute value exceeds this stops generation immediately (the offending
// term is kept, so the caller can see how far it ran away).
var magnitudeCeiling = new(big.Int).Exp(big.NewInt(10), big.NewInt(50), nil)

// Generate produces the trajectory of the generalized map starting at n.
//
// The trajectory begins with n itself and ends at the first of:
//
//  1. the value 1 (convergence — 1 is the last element),
//  2. a term exceeding the 1e50 magnitude ceiling (divergence guard,
//     offending term included),
//  3. a term already seen earlier (cycle; the repeated value is appended
//     once so the cycle closure is visible, unless it already is the last
//     element),
//  4. the iteration cap (exactly cfg.MaxIterations computed steps).
//
// Non-classical parameter sets apply the maximal divide-out shortcut after
// the multiply step: the result is divided by a while it remains exactly
// divisible. See Params.IsClassical.
//
// A start n < 1 or modulus a < 1 yields an empty trajectory — not an
// error, so range sweeps can include degenerate starts without guards.
//
// The returned slice is owned by the caller; Generate never retains it.
func Generate(n int64, p Params, cfg GeneratorConfig) []*big.Int {
	if n < 1 || p.A < 1 {
		return nil
	}

	a := big.NewInt(p.A)
	b := big.NewInt(p.B)
	c := big.NewInt(p.C)
	one := big.NewInt(1)

	cur := big.NewInt(n)
	trajectory := make([]*big.Int, 0, 16)
	trajectory = append(trajectory, cur)

	// Exact membership over all prior terms. Decimal strings as keys keeps
	// the check O(1) amortized without hashing big.Int internals.
	seen := map[string]struct{}{cur.String(): {}}

	rem := new(big.Int)
	for i := 0; i < cfg.MaxIterations; i++ {
		if cur.Cmp(one) == 0 {
			break
		}

		next := new(big.Int)
		if rem.Mod(cur, a).Sign() == 0 {
			next.Quo(cur, a)
		} else {
			next.Mul(b, cur)
			next.Add(next, c)

			// Maximal shortcut: divide out every factor of a. Suppressed
			// for the classical map, and meaningless for a = 1 (everything
			// divides, the loop would never end).
			if !p.IsClassical() && p.A > 1 {
				for next.Sign() != 0 && rem.Mod(next, a).Sign() == 0 {
					next.Quo(next, a)
				}
			}
		}

		if next.CmpAbs(magnitudeCeiling) > 0 {
			trajectory = append(trajectory, next)
			break
		}

		key := next.String()
		if _, ok := seen[key]; ok {
			// Cycle closed. Append the repeated value once so the closure
			// is visible, unless it is already sitting at the end.
			if next.Cmp(cur) != 0 {
				trajectory = append(trajectory, next)
			}
			break
		}

		seen[key] = struct{}{}
		trajectory = append(trajectory, next)
		cur = next
	}

	return trajectory
}
