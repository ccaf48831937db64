package tensor

import "fmt"

// Elimination is a named, independently testable rule that removes scalar
// factors from the catalog. Eliminations encode momentum-conservation
// bookkeeping; keeping them as explicit values makes the physical
// conventions auditable apart from the search.
type Elimination struct {
	// Name identifies the rule in logs and tests, e.g. "eliminate-p4".
	Name string

	// Drops reports whether the rule removes the factor from the catalog.
	Drops func(f ScalarFactor) bool
}

// EliminateMomentum returns the rule dropping every factor that uses the
// momentum of leg n: PP factors touching leg n and PE factors whose
// momentum leg is n. This implements the elimination of one leg's momentum
// via momentum conservation.
func EliminateMomentum(n int) Elimination {
	return Elimination{
		Name: fmt.Sprintf("eliminate-p%d", n),
		Drops: func(f ScalarFactor) bool {
			switch f.Kind {
			case KindPP:
				return f.A == n || f.B == n
			case KindPE:
				return f.A == n
			}
			return false
		},
	}
}

// ExcludeMomentumPolarization returns the rule dropping exactly the PE
// factor p_i · e_j. The conventional basis excludes (p_1 · e_n) alongside
// the p_n elimination; the rule is kept exactly as stated rather than
// generalized, pending an independent re-derivation of the underlying
// convention.
func ExcludeMomentumPolarization(i, j int) Elimination {
	return Elimination{
		Name: fmt.Sprintf("exclude-p%d-e%d", i, j),
		Drops: func(f ScalarFactor) bool {
			return f.Kind == KindPE && f.A == i && f.B == j
		},
	}
}

// DefaultEliminations returns the conventional rules for an n-leg basis:
// eliminate p_n and exclude p_1·e_n.
func DefaultEliminations(n int) []Elimination {
	return []Elimination{
		EliminateMomentum(n),
		ExcludeMomentumPolarization(1, n),
	}
}

// Catalog holds the three sorted, duplicate-free lists of permissible
// scalar factors for a configuration. It is a read-only input shared by
// the search and is never mutated after construction.
type Catalog struct {
	PP []ScalarFactor
	PE []ScalarFactor
	EE []ScalarFactor
}

// CatalogCounts reports the size of each factor list.
type CatalogCounts struct {
	PP int
	PE int
	EE int
}

// BuildCatalog builds the factor catalog for cfg under the conventional
// eliminations (see DefaultEliminations). Legs == 0 yields empty lists.
func BuildCatalog(cfg Config) Catalog {
	return BuildCatalogWith(cfg, DefaultEliminations(cfg.Legs))
}

// BuildCatalogWith builds the factor catalog for cfg applying the given
// elimination rules. The generation loops emit factors in ascending order,
// so each list is sorted and duplicate-free by construction.
func BuildCatalogWith(cfg Config, elims []Elimination) Catalog {
	n := cfg.Legs
	var c Catalog

	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			if f := PP(i, j); !dropped(f, elims) {
				c.PP = append(c.PP, f)
			}
		}
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			if cfg.Transversality == ForbidSelfDot && i == j {
				continue
			}
			if f := PE(i, j); !dropped(f, elims) {
				c.PE = append(c.PE, f)
			}
		}
	}

	// EE factors carry no momenta, so eliminations never touch them.
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			c.EE = append(c.EE, EE(i, j))
		}
	}

	return c
}

func dropped(f ScalarFactor, elims []Elimination) bool {
	for _, e := range elims {
		if e.Drops(f) {
			return true
		}
	}
	return false
}

// Counts returns the sizes of the three factor lists.
func (c Catalog) Counts() CatalogCounts {
	return CatalogCounts{PP: len(c.PP), PE: len(c.PE), EE: len(c.EE)}
}

// All returns the search catalog: the concatenation PP ++ PE ++ EE in that
// fixed order. The order only affects enumeration order during the search,
// never the sorted output.
func (c Catalog) All() []ScalarFactor {
	all := make([]ScalarFactor, 0, len(c.PP)+len(c.PE)+len(c.EE))
	all = append(all, c.PP...)
	all = append(all, c.PE...)
	all = append(all, c.EE...)
	return all
}
