package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/treeamps/treeamps/pkg/basisio"
	"github.com/treeamps/treeamps/pkg/errors"
	"github.com/treeamps/treeamps/pkg/tensor"
)

// RenderBasis renders structures into each of the requested formats.
// Options must be validated; Execute and RenderWithCacheInfo take care
// of that for callers.
func RenderBasis(ctx context.Context, structures []tensor.TensorStructure, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, structures, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, structures []tensor.TensorStructure, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatText:
		return renderText(structures, opts), nil
	case FormatJSON:
		var buf bytes.Buffer
		b := basisio.New(opts.TensorConfig(), opts.Degree, opts.EE, structures)
		if err := basisio.WriteJSON(b, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(tensor.BasisDOT(structures, opts.Legs)), nil
	case FormatSVG:
		dot := tensor.BasisDOT(structures, opts.Legs)
		return tensor.RenderSVG(ctx, dot)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
	}
}

// renderText produces the plain listing, one structure per line.
func renderText(structures []tensor.TensorStructure, opts Options) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Tensor structures (n=%d, deg=%d, ee=%d, transversality=%s, pol=%s) count=%d\n",
		opts.Legs, opts.Degree, opts.EE,
		opts.TensorConfig().Transversality, opts.TensorConfig().PolPattern,
		len(structures))
	for i, s := range structures {
		fmt.Fprintf(&buf, "  %d) %s\n", i+1, s)
	}
	return buf.Bytes()
}
