package tensor

import "fmt"

// ScalarKind identifies the kind of dot product in a scalar factor.
// The declaration order defines the primary sort key for factors:
// PP < PE < EE.
type ScalarKind int

const (
	// KindPP is a momentum-momentum dot product (p_i · p_j).
	KindPP ScalarKind = iota
	// KindPE is a momentum-polarization dot product (p_i · e_j).
	KindPE
	// KindEE is a polarization-polarization dot product (e_i · e_j).
	KindEE
)

// String returns the short kind name ("pp", "pe", "ee").
func (k ScalarKind) String() string {
	switch k {
	case KindPP:
		return "pp"
	case KindPE:
		return "pe"
	case KindEE:
		return "ee"
	}
	return fmt.Sprintf("ScalarKind(%d)", int(k))
}

// Transversality selects the p·e rule applied while building the factor
// catalog.
type Transversality int

const (
	// TransversalityNone allows p_i·e_i factors.
	TransversalityNone Transversality = iota
	// ForbidSelfDot excludes every p_i·e_i factor (transverse
	// polarizations).
	ForbidSelfDot
)

// String returns the flag value used by the CLI and presets.
func (t Transversality) String() string {
	if t == ForbidSelfDot {
		return "forbid-self-dot"
	}
	return "none"
}

// ParseTransversality converts a flag or preset value into a
// Transversality. The empty string maps to the default, ForbidSelfDot.
func ParseTransversality(s string) (Transversality, error) {
	switch s {
	case "", "forbid-self-dot":
		return ForbidSelfDot, nil
	case "none":
		return TransversalityNone, nil
	}
	return 0, fmt.Errorf("unknown transversality %q (must be none or forbid-self-dot)", s)
}

// PolarizationPattern selects how polarizations may appear per leg.
type PolarizationPattern int

const (
	// Unrestricted places no per-leg limit on polarization appearances.
	Unrestricted PolarizationPattern = iota
	// OnePerLeg requires each leg's polarization to appear in exactly one
	// factor across the whole structure.
	OnePerLeg
)

// String returns the flag value used by the CLI and presets.
func (p PolarizationPattern) String() string {
	if p == OnePerLeg {
		return "one-per-leg"
	}
	return "unrestricted"
}

// ParsePolarizationPattern converts a flag or preset value into a
// PolarizationPattern. The empty string maps to the default, OnePerLeg.
func ParsePolarizationPattern(s string) (PolarizationPattern, error) {
	switch s {
	case "", "one-per-leg":
		return OnePerLeg, nil
	case "unrestricted":
		return Unrestricted, nil
	}
	return 0, fmt.Errorf("unknown polarization pattern %q (must be unrestricted or one-per-leg)", s)
}

// Config describes which tensor structures are allowed. It is treated as
// immutable: a single Config may be shared across any number of Generate
// calls.
//
// Legs must be >= 1. Legs == 0 is an unchecked precondition violation;
// callers validate it before reaching the generator.
type Config struct {
	// Legs is the number of external legs, indexed 1..Legs. Leg Legs is
	// the distinguished leg whose momentum is eliminated by momentum
	// conservation.
	Legs int

	// Transversality selects the p·e rule for the catalog.
	Transversality Transversality

	// PolPattern selects the per-leg polarization convention enforced by
	// the search.
	PolPattern PolarizationPattern
}

// DefaultConfig returns the conventional gluon-basis configuration:
// three legs, transverse polarizations, one polarization per leg.
func DefaultConfig() Config {
	return Config{
		Legs:           3,
		Transversality: ForbidSelfDot,
		PolPattern:     OnePerLeg,
	}
}
