package tensor

import (
	"cmp"
	"fmt"
)

// ScalarFactor is a single dot product between two legs' vectors.
//
// For PP and EE factors the leg pair is unordered; the constructors
// normalize it so that A < B. For PE factors A is the momentum leg and B is
// the polarization leg, and no normalization applies.
//
// ScalarFactor is a small value type and is never mutated after
// construction.
type ScalarFactor struct {
	Kind ScalarKind
	A, B int
}

// PP returns the momentum-momentum factor p_i · p_j with the pair
// normalized so A < B.
func PP(i, j int) ScalarFactor {
	if j < i {
		i, j = j, i
	}
	return ScalarFactor{Kind: KindPP, A: i, B: j}
}

// PE returns the momentum-polarization factor p_i · e_j. The pair is
// ordered: i is the momentum leg, j the polarization leg.
func PE(i, j int) ScalarFactor {
	return ScalarFactor{Kind: KindPE, A: i, B: j}
}

// EE returns the polarization-polarization factor e_i · e_j with the pair
// normalized so A < B.
func EE(i, j int) ScalarFactor {
	if j < i {
		i, j = j, i
	}
	return ScalarFactor{Kind: KindEE, A: i, B: j}
}

// Compare defines the total order over scalar factors: kind first
// (PP < PE < EE), then A, then B. It returns -1, 0, or +1 following the
// convention of [cmp.Compare].
func (f ScalarFactor) Compare(other ScalarFactor) int {
	if c := cmp.Compare(f.Kind, other.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(f.A, other.A); c != 0 {
		return c
	}
	return cmp.Compare(f.B, other.B)
}

// String renders the factor in the conventional notation, e.g. "(p1·p2)",
// "(p2·e3)", "(e1·e4)".
func (f ScalarFactor) String() string {
	switch f.Kind {
	case KindPP:
		return fmt.Sprintf("(p%d·p%d)", f.A, f.B)
	case KindPE:
		return fmt.Sprintf("(p%d·e%d)", f.A, f.B)
	case KindEE:
		return fmt.Sprintf("(e%d·e%d)", f.A, f.B)
	}
	return fmt.Sprintf("(?%d·?%d)", f.A, f.B)
}
