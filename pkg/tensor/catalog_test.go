package tensor

import (
	"slices"
	"testing"
)

func TestBuildCatalog_FourLegs(t *testing.T) {
	cfg := Config{Legs: 4, Transversality: ForbidSelfDot, PolPattern: OnePerLeg}
	cat := BuildCatalog(cfg)

	// PP: leg 4's momentum is eliminated, so no PP factor mentions leg 4.
	wantPP := []ScalarFactor{PP(1, 2), PP(1, 3), PP(2, 3)}
	if !slices.Equal(cat.PP, wantPP) {
		t.Errorf("PP = %v, want %v", cat.PP, wantPP)
	}

	// PE: no momentum leg 4, no self-dots, and no (p1·e4).
	wantPE := []ScalarFactor{
		PE(1, 2), PE(1, 3),
		PE(2, 1), PE(2, 3), PE(2, 4),
		PE(3, 1), PE(3, 2), PE(3, 4),
	}
	if !slices.Equal(cat.PE, wantPE) {
		t.Errorf("PE = %v, want %v", cat.PE, wantPE)
	}

	// EE: unrestricted.
	wantEE := []ScalarFactor{EE(1, 2), EE(1, 3), EE(1, 4), EE(2, 3), EE(2, 4), EE(3, 4)}
	if !slices.Equal(cat.EE, wantEE) {
		t.Errorf("EE = %v, want %v", cat.EE, wantEE)
	}

	if got := cat.Counts(); got != (CatalogCounts{PP: 3, PE: 8, EE: 6}) {
		t.Errorf("Counts() = %+v", got)
	}
}

func TestBuildCatalog_SelfDotsAllowed(t *testing.T) {
	cfg := Config{Legs: 3, Transversality: TransversalityNone}
	cat := BuildCatalog(cfg)

	if !slices.Contains(cat.PE, PE(1, 1)) || !slices.Contains(cat.PE, PE(2, 2)) {
		t.Errorf("expected self-dot PE factors under TransversalityNone, got %v", cat.PE)
	}
	// p3 is still eliminated even when self-dots are allowed.
	if slices.Contains(cat.PE, PE(3, 3)) {
		t.Errorf("PE should not contain momentum leg 3: %v", cat.PE)
	}
}

func TestBuildCatalog_ZeroLegs(t *testing.T) {
	cat := BuildCatalog(Config{Legs: 0})
	if got := cat.Counts(); got != (CatalogCounts{}) {
		t.Errorf("Counts() = %+v, want all zero", got)
	}
	if len(cat.All()) != 0 {
		t.Errorf("All() should be empty")
	}
}

func TestBuildCatalog_ListsSortedAndUnique(t *testing.T) {
	for _, legs := range []int{1, 2, 3, 4, 5, 6} {
		cat := BuildCatalog(Config{Legs: legs, Transversality: ForbidSelfDot})
		for name, list := range map[string][]ScalarFactor{"PP": cat.PP, "PE": cat.PE, "EE": cat.EE} {
			for i := 1; i < len(list); i++ {
				if list[i-1].Compare(list[i]) >= 0 {
					t.Errorf("legs=%d %s not strictly ascending at %d: %v", legs, name, i, list)
				}
			}
		}
	}
}

func TestCatalog_AllOrder(t *testing.T) {
	cfg := Config{Legs: 4, Transversality: ForbidSelfDot}
	cat := BuildCatalog(cfg)
	all := cat.All()

	want := len(cat.PP) + len(cat.PE) + len(cat.EE)
	if len(all) != want {
		t.Fatalf("len(All()) = %d, want %d", len(all), want)
	}
	if !slices.Equal(all[:len(cat.PP)], cat.PP) {
		t.Error("All() does not start with PP")
	}
	if !slices.Equal(all[len(cat.PP):len(cat.PP)+len(cat.PE)], cat.PE) {
		t.Error("All() does not continue with PE")
	}
	if !slices.Equal(all[len(cat.PP)+len(cat.PE):], cat.EE) {
		t.Error("All() does not end with EE")
	}
}

func TestEliminateMomentum(t *testing.T) {
	rule := EliminateMomentum(4)

	drops := []ScalarFactor{PP(1, 4), PP(3, 4), PE(4, 1), PE(4, 3)}
	for _, f := range drops {
		if !rule.Drops(f) {
			t.Errorf("%s should drop %v", rule.Name, f)
		}
	}

	keeps := []ScalarFactor{PP(1, 2), PE(1, 4), PE(2, 4), EE(1, 4), EE(3, 4)}
	for _, f := range keeps {
		if rule.Drops(f) {
			t.Errorf("%s should keep %v", rule.Name, f)
		}
	}
}

func TestExcludeMomentumPolarization(t *testing.T) {
	rule := ExcludeMomentumPolarization(1, 4)

	if !rule.Drops(PE(1, 4)) {
		t.Errorf("%s should drop (p1·e4)", rule.Name)
	}
	for _, f := range []ScalarFactor{PE(4, 1), PE(1, 3), PE(2, 4), PP(1, 4), EE(1, 4)} {
		if rule.Drops(f) {
			t.Errorf("%s should keep %v", rule.Name, f)
		}
	}
}

func TestBuildCatalogWith_NoEliminations(t *testing.T) {
	cfg := Config{Legs: 3, Transversality: ForbidSelfDot}
	cat := BuildCatalogWith(cfg, nil)

	// Without eliminations every i<j PP pair survives, including leg 3.
	wantPP := []ScalarFactor{PP(1, 2), PP(1, 3), PP(2, 3)}
	if !slices.Equal(cat.PP, wantPP) {
		t.Errorf("PP = %v, want %v", cat.PP, wantPP)
	}
	if got := cat.Counts(); got.PE != 6 {
		t.Errorf("PE count = %d, want 6 (all ordered non-self pairs)", got.PE)
	}
}
