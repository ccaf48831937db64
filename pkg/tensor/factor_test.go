package tensor

import (
	"slices"
	"testing"
)

func TestConstructors_NormalizeUnorderedPairs(t *testing.T) {
	if got := PP(3, 1); got.A != 1 || got.B != 3 {
		t.Errorf("PP(3,1) = %v, want A=1 B=3", got)
	}
	if got := EE(4, 2); got.A != 2 || got.B != 4 {
		t.Errorf("EE(4,2) = %v, want A=2 B=4", got)
	}
	// PE is an ordered pair: momentum leg then polarization leg.
	if got := PE(3, 1); got.A != 3 || got.B != 1 {
		t.Errorf("PE(3,1) = %v, want A=3 B=1", got)
	}
}

func TestScalarFactor_Compare(t *testing.T) {
	ordered := []ScalarFactor{
		PP(1, 2),
		PP(1, 3),
		PP(2, 3),
		PE(1, 2),
		PE(2, 1),
		PE(2, 3),
		EE(1, 2),
		EE(3, 4),
	}

	for i := range ordered {
		for j := range ordered {
			got := ordered[i].Compare(ordered[j])
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got != want {
				t.Errorf("Compare(%v, %v) = %d, want %d", ordered[i], ordered[j], got, want)
			}
		}
	}

	shuffled := []ScalarFactor{EE(3, 4), PE(2, 1), PP(2, 3), PE(1, 2), EE(1, 2), PP(1, 2), PE(2, 3), PP(1, 3)}
	slices.SortFunc(shuffled, ScalarFactor.Compare)
	if !slices.Equal(shuffled, ordered) {
		t.Errorf("sorted = %v, want %v", shuffled, ordered)
	}
}

func TestScalarFactor_String(t *testing.T) {
	tests := []struct {
		factor ScalarFactor
		want   string
	}{
		{PP(1, 2), "(p1·p2)"},
		{PE(2, 3), "(p2·e3)"},
		{PE(3, 1), "(p3·e1)"},
		{EE(1, 4), "(e1·e4)"},
	}
	for _, tt := range tests {
		if got := tt.factor.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTensorStructure_String(t *testing.T) {
	var empty TensorStructure
	if got := empty.String(); got != "1" {
		t.Errorf("empty structure String() = %q, want %q", got, "1")
	}

	ts := TensorStructure{Factors: []ScalarFactor{EE(1, 2), PE(2, 3)}, EEContractions: 1}
	if got := ts.String(); got != "(e1·e2) · (p2·e3)" {
		t.Errorf("String() = %q", got)
	}
}

func TestTensorStructure_CanonicalizeAndCompare(t *testing.T) {
	a := TensorStructure{Factors: []ScalarFactor{EE(1, 2), PP(1, 2), PE(2, 1)}, EEContractions: 1}
	b := TensorStructure{Factors: []ScalarFactor{PP(1, 2), PE(2, 1), EE(1, 2)}, EEContractions: 1}

	a.Canonicalize()
	b.Canonicalize()

	if a.Compare(b) != 0 {
		t.Errorf("canonical forms differ: %v vs %v", a, b)
	}

	want := []ScalarFactor{PP(1, 2), PE(2, 1), EE(1, 2)}
	if !slices.Equal(a.Factors, want) {
		t.Errorf("canonical order = %v, want %v", a.Factors, want)
	}

	// A shorter sequence that is a prefix sorts first.
	short := TensorStructure{Factors: []ScalarFactor{PP(1, 2)}}
	if short.Compare(a) >= 0 {
		t.Errorf("prefix should sort before its extension")
	}
}

func TestTensorStructure_CloneIsIndependent(t *testing.T) {
	orig := TensorStructure{Factors: []ScalarFactor{PP(1, 2), PE(1, 2)}}
	cp := orig.Clone()
	cp.Factors[0] = EE(1, 2)

	if orig.Factors[0] != PP(1, 2) {
		t.Error("mutating a clone changed the original")
	}
}
