package benfordscan

// IsTrivial reports whether the parameter triple produces degenerate
// dynamics not worth scanning. Rules are checked in order; the first match
// decides:
//
//  1. a = 1 — every integer divides, the map is pure division, the
//     trajectory collapses immediately.
//  2. b = 0 and c = 0 — the multiply step always lands on 0.
//  3. b = 1 and c = 0 — the multiply step is the identity.
//  4. c = 0 and a divides b — the multiply step's factor of a is divided
//     straight back out, collapsing the step.
//  5. b < 0 and c < 0 — the multiply step goes negative on the first
//     application, leaving the positive-integer domain for good.
//
// Triples classified trivial seed the hole set: they are excluded from
// cube scans and never scored.
func IsTrivial(p Params) bool {
	switch {
	case p.A == 1:
		return true
	case p.B == 0 && p.C == 0:
		return true
	case p.B == 1 && p.C == 0:
		return true
	case p.C == 0 && p.A != 0 && p.B%p.A == 0:
		return true
	case p.B < 0 && p.C < 0:
		return true
	}
	return false
}

// HoleSet is the exclusion set of parameter triples. Build it once before a
// scan; the scanner only reads it.
type HoleSet map[Params]struct{}

// Contains reports membership.
func (s HoleSet) Contains(p Params) bool {
	_, ok := s[p]
	return ok
}

// Add inserts a triple.
func (s HoleSet) Add(p Params) {
	s[p] = struct{}{}
}

// ParamRange is an inclusive integer interval for one parameter axis.
type ParamRange struct {
	Min, Max int64
}

// TrivialSet enumerates the cuboid spanned by the three ranges and returns
// every trivial triple inside it. The classification is pure, so running
// this twice over the same ranges yields the identical set.
func TrivialSet(aRange, bRange, cRange ParamRange) HoleSet {
	holes := make(HoleSet)
	for a := aRange.Min; a <= aRange.Max; a++ {
		for b := bRange.Min; b <= bRange.Max; b++ {
			for c := cRange.Min; c <= cRange.Max; c++ {
				p := Params{A: a, B: b, C: c}
				if IsTrivial(p) {
					holes.Add(p)
				}
			}
		}
	}
	return holes
}
