package tensor

import "slices"

// Generate enumerates all permissible tensor structures with exactly
// targetDegree factors, of which exactly eeContractions are EE-kind,
// under the constraints described by cfg.
//
// The returned slice is sorted ascending by [TensorStructure.Compare] and
// contains no duplicates; every structure is canonical. Identical inputs
// always produce an identical, identically ordered result.
//
// Degenerate inputs are represented as an empty result, not an error:
// targetDegree == 0 and eeContractions > targetDegree both return nil.
// cfg.Legs == 0 is an unchecked precondition violation; callers reject it
// upstream.
func Generate(cfg Config, targetDegree, eeContractions int) []TensorStructure {
	return GenerateFrom(cfg, BuildCatalog(cfg), targetDegree, eeContractions)
}

// GenerateFrom runs the combination search against a prebuilt catalog.
// Most callers use [Generate]; GenerateFrom exists for configurations with
// non-default elimination rules.
func GenerateFrom(cfg Config, cat Catalog, targetDegree, eeContractions int) []TensorStructure {
	if targetDegree == 0 || eeContractions > targetDegree {
		return nil
	}

	s := &searchState{
		targetDegree: targetDegree,
		eeNeeded:     eeContractions,
		legs:         cfg.Legs,
		onePerLeg:    cfg.PolPattern == OnePerLeg,
		catalog:      cat.All(),
		polUsage:     make([]int, cfg.Legs+1),
	}
	s.search(0)
	return s.out
}

// searchState holds the mutable recursion state of a single search. It is
// exclusively owned by the one search in flight; push and pop calls nest
// in strict stack discipline with the recursion.
type searchState struct {
	targetDegree int
	eeNeeded     int
	legs         int
	onePerLeg    bool
	catalog      []ScalarFactor

	cur      TensorStructure
	peCount  int
	polUsage []int // per-leg polarization touches, indexed 1..legs

	out []TensorStructure // sorted, duplicate-free result set
}

// search is the backtracking enumeration. The strictly increasing start
// index makes this a subset search over the catalog: each factor is
// considered at most once per branch, so canonicalization at the leaf is
// sufficient to avoid order-of-discovery duplicates.
func (s *searchState) search(start int) {
	degree := s.cur.Degree()

	if degree > s.targetDegree || s.cur.EEContractions > s.eeNeeded {
		return
	}

	if s.onePerLeg && s.hopeless(degree) {
		return
	}

	if degree == s.targetDegree {
		if s.cur.EEContractions == s.eeNeeded && s.covered() {
			s.accept()
		}
		return
	}

	for i := start; i < len(s.catalog); i++ {
		f := s.catalog[i]
		s.push(f)
		s.search(i + 1)
		s.pop(f)
	}
}

// hopeless applies the one-pol-per-leg prunes. All three checks are
// monotone: once violated, no extension of the branch can recover.
func (s *searchState) hopeless(degree int) bool {
	missing := 0
	for leg := 1; leg <= s.legs; leg++ {
		switch {
		case s.polUsage[leg] > 1:
			// Double polarization use cannot be undone within the branch.
			return true
		case s.polUsage[leg] == 0:
			missing++
		}
	}

	// Each remaining factor covers at most two legs (an EE choice).
	remain := s.targetDegree - degree
	if remain*2 < missing {
		return true
	}

	// More polarization touches than legs can never reach exactly one per leg.
	return 2*s.cur.EEContractions+s.peCount > s.legs
}

// covered reports whether a terminal candidate satisfies the polarization
// pattern. Under Unrestricted the leaf is accepted unconditionally.
func (s *searchState) covered() bool {
	if !s.onePerLeg {
		return true
	}
	if 2*s.cur.EEContractions+s.peCount != s.legs {
		return false
	}
	for leg := 1; leg <= s.legs; leg++ {
		if s.polUsage[leg] != 1 {
			return false
		}
	}
	return true
}

// accept copies the partial structure, canonicalizes it, and inserts it
// into the sorted result set. The increasing-index discipline means a true
// duplicate can never arrive; the insertion exists to produce sorted
// output deterministically.
func (s *searchState) accept() {
	t := s.cur.Clone()
	t.Canonicalize()

	idx, found := slices.BinarySearchFunc(s.out, t, TensorStructure.Compare)
	if found {
		return
	}
	s.out = slices.Insert(s.out, idx, t)
}

func (s *searchState) push(f ScalarFactor) {
	s.cur.Factors = append(s.cur.Factors, f)
	switch f.Kind {
	case KindPE:
		s.peCount++
		s.polUsage[f.B]++
	case KindEE:
		s.cur.EEContractions++
		s.polUsage[f.A]++
		s.polUsage[f.B]++
	}
}

func (s *searchState) pop(f ScalarFactor) {
	switch f.Kind {
	case KindPE:
		s.peCount--
		s.polUsage[f.B]--
	case KindEE:
		s.cur.EEContractions--
		s.polUsage[f.A]--
		s.polUsage[f.B]--
	}
	s.cur.Factors = s.cur.Factors[:len(s.cur.Factors)-1]
}
