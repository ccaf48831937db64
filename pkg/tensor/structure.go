package tensor

import (
	"slices"
	"strings"
)

// TensorStructure is a product of scalar factors forming one basis term of
// an amplitude's tensor decomposition.
//
// The factor sequence is a multiset; two structures are equal iff their
// canonical (sorted) sequences are equal. EEContractions caches the number
// of EE-kind factors in the sequence and is kept consistent incrementally
// by the search; it always equals the count a full scan would produce.
type TensorStructure struct {
	Factors        []ScalarFactor
	EEContractions int
}

// Canonicalize sorts the factor sequence into the canonical ascending
// order. Structures returned by Generate are always canonical.
func (t *TensorStructure) Canonicalize() {
	slices.SortFunc(t.Factors, ScalarFactor.Compare)
}

// Degree returns the number of factors in the structure.
func (t TensorStructure) Degree() int {
	return len(t.Factors)
}

// Clone returns a deep copy of the structure.
func (t TensorStructure) Clone() TensorStructure {
	return TensorStructure{
		Factors:        slices.Clone(t.Factors),
		EEContractions: t.EEContractions,
	}
}

// Compare defines the total order over tensor structures: lexicographic
// comparison of the factor sequences, with a shorter prefix sorting first.
// Comparing non-canonical structures is meaningful only for equality of
// identical sequences; Generate only ever compares canonical ones.
func (t TensorStructure) Compare(other TensorStructure) int {
	return slices.CompareFunc(t.Factors, other.Factors, ScalarFactor.Compare)
}

// String renders the structure as a product of factors, e.g.
// "(e1·e2) · (p2·e3) · (p3·e4)". The empty structure renders as "1".
func (t TensorStructure) String() string {
	if len(t.Factors) == 0 {
		return "1"
	}
	parts := make([]string, len(t.Factors))
	for i, f := range t.Factors {
		parts[i] = f.String()
	}
	return strings.Join(parts, " · ")
}
