package tensor

import (
	"slices"
	"testing"
)

func fourLegs(pattern PolarizationPattern) Config {
	return Config{Legs: 4, Transversality: ForbidSelfDot, PolPattern: pattern}
}

func TestGenerate_FourLegsMixedBasis(t *testing.T) {
	// Mixed (EE)(PE)(PE) gluon basis with one polarization per leg.
	basis := Generate(fourLegs(OnePerLeg), 3, 1)

	if len(basis) != 24 {
		t.Fatalf("got %d structures, want 24", len(basis))
	}

	for _, ts := range basis {
		if ts.Degree() != 3 {
			t.Errorf("structure %v has degree %d, want 3", ts, ts.Degree())
		}
		if ts.EEContractions != 1 {
			t.Errorf("structure %v has %d EE contractions, want 1", ts, ts.EEContractions)
		}
	}
}

func TestGenerate_FourLegsPureEEBasis(t *testing.T) {
	// Pure EE basis: the three perfect matchings of the four legs.
	basis := Generate(fourLegs(OnePerLeg), 2, 2)

	want := []TensorStructure{
		{Factors: []ScalarFactor{EE(1, 2), EE(3, 4)}, EEContractions: 2},
		{Factors: []ScalarFactor{EE(1, 3), EE(2, 4)}, EEContractions: 2},
		{Factors: []ScalarFactor{EE(1, 4), EE(2, 3)}, EEContractions: 2},
	}

	if len(basis) != len(want) {
		t.Fatalf("got %d structures, want %d:\n%v", len(basis), len(want), basis)
	}
	for i := range want {
		if basis[i].Compare(want[i]) != 0 {
			t.Errorf("basis[%d] = %v, want %v", i, basis[i], want[i])
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := fourLegs(OnePerLeg)

	first := Generate(cfg, 3, 1)
	second := Generate(cfg, 3, 1)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Compare(second[i]) != 0 {
			t.Errorf("results diverge at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestGenerate_DegenerateInputs(t *testing.T) {
	cfg := fourLegs(OnePerLeg)

	if got := Generate(cfg, 0, 0); got != nil {
		t.Errorf("degree 0 should yield empty result, got %v", got)
	}
	if got := Generate(cfg, 2, 3); got != nil {
		t.Errorf("ee > degree should yield empty result, got %v", got)
	}
}

func TestGenerate_OutputSortedCanonicalDistinct(t *testing.T) {
	basis := Generate(fourLegs(OnePerLeg), 3, 1)

	for i, ts := range basis {
		// Canonical form: non-decreasing factor sequence.
		for j := 1; j < len(ts.Factors); j++ {
			if ts.Factors[j-1].Compare(ts.Factors[j]) > 0 {
				t.Errorf("structure %d not canonical: %v", i, ts)
			}
		}
		// Cached EE count consistent with the sequence.
		ee := 0
		for _, f := range ts.Factors {
			if f.Kind == KindEE {
				ee++
			}
		}
		if ee != ts.EEContractions {
			t.Errorf("structure %d EE cache = %d, scan = %d", i, ts.EEContractions, ee)
		}
		// Strictly ascending result set means sorted and pairwise distinct.
		if i > 0 && basis[i-1].Compare(ts) >= 0 {
			t.Errorf("result not strictly ascending at %d: %v >= %v", i, basis[i-1], ts)
		}
	}
}

func TestGenerate_OnePerLegTouchesEachLegOnce(t *testing.T) {
	cfg := fourLegs(OnePerLeg)
	basis := Generate(cfg, 3, 1)

	for _, ts := range basis {
		usage := make([]int, cfg.Legs+1)
		for _, f := range ts.Factors {
			switch f.Kind {
			case KindPE:
				usage[f.B]++
			case KindEE:
				usage[f.A]++
				usage[f.B]++
			}
		}
		for leg := 1; leg <= cfg.Legs; leg++ {
			if usage[leg] != 1 {
				t.Errorf("structure %v touches e%d %d times, want exactly 1", ts, leg, usage[leg])
			}
		}
	}
}

func TestGenerate_UnrestrictedIsSuperset(t *testing.T) {
	restricted := Generate(fourLegs(OnePerLeg), 3, 1)
	unrestricted := Generate(fourLegs(Unrestricted), 3, 1)

	if len(unrestricted) < len(restricted) {
		t.Fatalf("unrestricted basis (%d) smaller than one-per-leg basis (%d)",
			len(unrestricted), len(restricted))
	}

	for _, ts := range restricted {
		if _, found := slices.BinarySearchFunc(unrestricted, ts, TensorStructure.Compare); !found {
			t.Errorf("one-per-leg structure %v missing from unrestricted basis", ts)
		}
	}
	t.Logf("one-per-leg: %d, unrestricted: %d", len(restricted), len(unrestricted))
}

func TestGenerate_ThreeLegsPurePEBasis(t *testing.T) {
	// n=3, deg=3, ee=0: only one assignment covers each polarization once.
	basis := Generate(DefaultConfig(), 3, 0)

	if len(basis) != 1 {
		t.Fatalf("got %d structures, want 1: %v", len(basis), basis)
	}
	want := TensorStructure{Factors: []ScalarFactor{PE(1, 2), PE(2, 1), PE(2, 3)}}
	if basis[0].Compare(want) != 0 {
		t.Errorf("basis[0] = %v, want %v", basis[0], want)
	}
}

func TestGenerateFrom_CustomEliminations(t *testing.T) {
	// Dropping the (p1·e_n) exclusion widens the PE catalog and the basis.
	cfg := fourLegs(OnePerLeg)
	cat := BuildCatalogWith(cfg, []Elimination{EliminateMomentum(4)})

	widened := GenerateFrom(cfg, cat, 3, 1)
	standard := Generate(cfg, 3, 1)

	if len(widened) <= len(standard) {
		t.Errorf("widened basis has %d structures, expected more than %d", len(widened), len(standard))
	}
	for _, ts := range standard {
		if _, found := slices.BinarySearchFunc(widened, ts, TensorStructure.Compare); !found {
			t.Errorf("standard structure %v missing from widened basis", ts)
		}
	}
}

func TestGenerate_NoAllocationCrosstalk(t *testing.T) {
	// Factor slices of returned structures must not alias the search buffer.
	basis := Generate(fourLegs(OnePerLeg), 2, 2)
	if len(basis) < 2 {
		t.Skip("need at least two structures")
	}
	basis[0].Factors[0] = PP(1, 2)
	if basis[1].Factors[0] == PP(1, 2) {
		t.Error("structures share backing arrays")
	}
}
