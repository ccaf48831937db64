// Package basisio reads and writes generated tensor bases as JSON.
//
// The wire format captures the full generation configuration next to the
// structures, so an exported basis is self-describing and can be
// re-imported (or cached) without re-running the search:
//
//	{
//	  "legs": 4,
//	  "transversality": "forbid-self-dot",
//	  "pol_pattern": "one-per-leg",
//	  "degree": 3,
//	  "ee": 1,
//	  "structures": [
//	    {"factors": [{"kind": "ee", "a": 1, "b": 2}, ...], "pretty": "(e1·e2) · ..."}
//	  ]
//	}
//
// Factors are stored structurally; the "pretty" field is informational and
// ignored on import.
package basisio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/treeamps/treeamps/pkg/tensor"
)

// Basis is the JSON wire form of a generated basis.
type Basis struct {
	Legs           int         `json:"legs"`
	Transversality string      `json:"transversality"`
	PolPattern     string      `json:"pol_pattern"`
	Degree         int         `json:"degree"`
	EE             int         `json:"ee"`
	Structures     []Structure `json:"structures"`
}

// Structure is the wire form of one tensor structure.
type Structure struct {
	Factors []Factor `json:"factors"`
	Pretty  string   `json:"pretty,omitempty"`
}

// Factor is the wire form of one scalar factor.
type Factor struct {
	Kind string `json:"kind"`
	A    int    `json:"a"`
	B    int    `json:"b"`
}

// New builds the wire form of a generated basis.
func New(cfg tensor.Config, degree, ee int, structures []tensor.TensorStructure) *Basis {
	b := &Basis{
		Legs:           cfg.Legs,
		Transversality: cfg.Transversality.String(),
		PolPattern:     cfg.PolPattern.String(),
		Degree:         degree,
		EE:             ee,
		Structures:     make([]Structure, len(structures)),
	}
	for i, ts := range structures {
		ws := Structure{
			Factors: make([]Factor, len(ts.Factors)),
			Pretty:  ts.String(),
		}
		for j, f := range ts.Factors {
			ws.Factors[j] = Factor{Kind: f.Kind.String(), A: f.A, B: f.B}
		}
		b.Structures[i] = ws
	}
	return b
}

// Config reconstructs the generation configuration from the wire form.
func (b *Basis) Config() (tensor.Config, error) {
	tv, err := tensor.ParseTransversality(b.Transversality)
	if err != nil {
		return tensor.Config{}, err
	}
	pp, err := tensor.ParsePolarizationPattern(b.PolPattern)
	if err != nil {
		return tensor.Config{}, err
	}
	return tensor.Config{Legs: b.Legs, Transversality: tv, PolPattern: pp}, nil
}

// Decode reconstructs the tensor structures from the wire form, restoring
// the cached EE counts.
func (b *Basis) Decode() ([]tensor.TensorStructure, error) {
	out := make([]tensor.TensorStructure, len(b.Structures))
	for i, ws := range b.Structures {
		ts := tensor.TensorStructure{Factors: make([]tensor.ScalarFactor, len(ws.Factors))}
		for j, f := range ws.Factors {
			switch f.Kind {
			case "pp":
				ts.Factors[j] = tensor.PP(f.A, f.B)
			case "pe":
				ts.Factors[j] = tensor.PE(f.A, f.B)
			case "ee":
				ts.Factors[j] = tensor.EE(f.A, f.B)
				ts.EEContractions++
			default:
				return nil, fmt.Errorf("structure %d: unknown factor kind %q", i, f.Kind)
			}
		}
		out[i] = ts
	}
	return out, nil
}

// WriteJSON encodes a basis as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(b *Basis, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a basis from r.
func ReadJSON(r io.Reader) (*Basis, error) {
	var b Basis
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &b, nil
}

// ExportJSON writes a basis to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(b *Basis, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(b, f)
}

// ImportJSON reads a basis from a JSON file at path.
func ImportJSON(path string) (*Basis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
