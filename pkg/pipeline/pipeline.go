// Package pipeline provides the basis generation pipeline for treeamps.
//
// This package implements the complete validate → generate → render flow
// that is shared by the CLI and the HTTP API. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: Enumerate the tensor-structure basis for a configuration
//  2. Render: Produce output in various formats (text, JSON, DOT, SVG)
//
// Validation happens before the first stage and owns the responsibilities
// the core generator leaves to callers: rejecting legs < 1, resolving an
// unspecified degree or EE count via the one-polarization-per-leg
// identity, and rejecting inconsistent or infeasible pairs.
//
// # The one-pol-per-leg identity
//
// Under the one-polarization-per-leg convention every leg contributes
// exactly one polarization touch; EE factors consume two touches and PE
// factors one, so
//
//	degree = legs − ee   and   ee = legs − degree.
//
// A zero degree or EE count is treated as "unspecified" and inferred from
// the other; if both are given they must satisfy the identity.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Legs: 4, Degree: 3, EE: 1, Formats: []string{"text"}}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifacts["text"]))
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/treeamps/treeamps/pkg/cache"
	"github.com/treeamps/treeamps/pkg/errors"
	"github.com/treeamps/treeamps/pkg/tensor"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultLegs is the conventional default leg count.
	DefaultLegs = 3
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for API requests.
//
// Degree and EE follow the original treeamps convention: zero means
// "unspecified, infer from the identity" when the polarization pattern is
// one-per-leg. Under the unrestricted pattern an explicit degree is
// required.
type Options struct {
	Legs           int    `json:"legs,omitempty"`
	Degree         int    `json:"degree,omitempty"`
	EE             int    `json:"ee,omitempty"`
	Transversality string `json:"transversality,omitempty"`
	PolPattern     string `json:"pol_pattern,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// cfg is the resolved tensor configuration, set during validation.
	cfg tensor.Config

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: text, json, dot, svg)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
//
// On success, Degree and EE hold their resolved values and TensorConfig
// returns the resolved configuration.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Legs == 0 {
		o.Legs = DefaultLegs
	}
	if err := errors.ValidateLegs(o.Legs); err != nil {
		return err
	}

	tv, err := tensor.ParseTransversality(o.Transversality)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "transversality")
	}
	pp, err := tensor.ParsePolarizationPattern(o.PolPattern)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "polarization pattern")
	}
	o.cfg = tensor.Config{Legs: o.Legs, Transversality: tv, PolPattern: pp}
	o.Transversality = tv.String()
	o.PolPattern = pp.String()

	if err := o.resolveCounts(); err != nil {
		return err
	}
	if err := errors.ValidateCounts(o.Degree, o.EE); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// resolveCounts applies the one-pol-per-leg identity to fill in an
// unspecified degree or EE count, and rejects pairs that contradict it.
func (o *Options) resolveCounts() error {
	if o.cfg.PolPattern != tensor.OnePerLeg {
		if o.Degree == 0 {
			return errors.New(errors.ErrCodeInvalidDegree,
				"degree is required when the polarization pattern is unrestricted")
		}
		return nil
	}

	impliedDegree := o.Legs - o.EE
	impliedEE := o.Legs - o.Degree

	switch {
	case o.Degree != 0 && o.EE != 0:
		if o.Degree != impliedDegree || o.EE != impliedEE {
			return errors.New(errors.ErrCodeInconsistentBasis,
				"inconsistent inputs for one-pol-per-leg: legs=%d degree=%d ee=%d; expected degree = legs - ee = %d and ee = legs - degree = %d",
				o.Legs, o.Degree, o.EE, impliedDegree, impliedEE)
		}
	case o.Degree == 0 && o.EE != 0:
		o.Degree = impliedDegree
	case o.EE == 0 && o.Degree != 0:
		o.EE = impliedEE
	default:
		// Neither given: pure PE basis with no EE contractions.
		o.Degree = o.Legs
		o.EE = 0
	}
	return nil
}

// TensorConfig returns the resolved tensor configuration.
// Only meaningful after ValidateAndSetDefaults has succeeded.
func (o *Options) TensorConfig() tensor.Config {
	return o.cfg
}

// BasisKeyOpts returns cache key options for the generation stage.
func (o *Options) BasisKeyOpts() cache.BasisKeyOpts {
	return cache.BasisKeyOpts{
		Legs:           o.Legs,
		Transversality: o.Transversality,
		PolPattern:     o.PolPattern,
		Degree:         o.Degree,
		EE:             o.EE,
	}
}

// ArtifactKeyOpts returns cache key options for a rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Structures is the generated basis, sorted and duplicate-free.
	Structures []tensor.TensorStructure

	// BasisHash is the content hash of the serialized basis.
	BasisHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StructureCount int
	CatalogCounts  tensor.CatalogCounts
	GenerateTime   time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BasisHit  bool // Whether the basis came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Known Counts
// =============================================================================

// KnownCount returns the independently derived structure count for a
// handful of fixed four-gluon cases, used as a sanity check by the CLI.
// The second return is false when no reference count exists for the
// inputs.
func KnownCount(legs, degree, ee int, onePerLeg bool) (int, bool) {
	if legs != 4 || !onePerLeg {
		return 0, false
	}
	switch {
	case degree == 3 && ee == 1:
		// Mixed (EE)(PE)(PE) basis.
		return 24, true
	case degree == 2 && ee == 2:
		// Pure EE basis: the perfect matchings of four legs.
		return 3, true
	}
	return 0, false
}
