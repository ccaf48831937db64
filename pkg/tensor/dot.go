package tensor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the structure as a
// multigraph over the legs: one node per leg and one edge per factor.
//
// Edge styling encodes the factor kind:
//   - PP: solid edge labeled "p·p"
//   - PE: dashed directed-looking edge labeled "p·e" (tail = momentum leg)
//   - EE: bold edge labeled "e·e"
//
// legs is the number of external legs; every leg gets a node even when no
// factor touches it, so different structures of the same basis render on
// the same vertex set.
func (t TensorStructure) ToDOT(legs int) string {
	var buf bytes.Buffer
	buf.WriteString("graph TensorStructure {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, shape=circle, style=filled, fillcolor=white];\n\n")
	writeStructure(&buf, t, legs, "")
	buf.WriteString("}\n")
	return buf.String()
}

// BasisDOT renders a whole basis as one DOT graph with a cluster subgraph
// per structure, each labeled with its 1-based index. Useful for eyeballing
// small bases side by side.
func BasisDOT(basis []TensorStructure, legs int) string {
	var buf bytes.Buffer
	buf.WriteString("graph TensorBasis {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=circle, style=filled, fillcolor=white];\n\n")

	for i, t := range basis {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=\"%d\";\n", i+1)
		var inner bytes.Buffer
		writeStructure(&inner, t, legs, fmt.Sprintf("s%d_", i))
		for _, line := range bytes.Split(bytes.TrimRight(inner.Bytes(), "\n"), []byte("\n")) {
			buf.WriteString("  ")
			buf.Write(line)
			buf.WriteString("\n")
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeStructure(buf *bytes.Buffer, t TensorStructure, legs int, prefix string) {
	for leg := 1; leg <= legs; leg++ {
		fmt.Fprintf(buf, "  %sleg%d [label=\"%d\"];\n", prefix, leg, leg)
	}
	for _, f := range t.Factors {
		switch f.Kind {
		case KindPP:
			fmt.Fprintf(buf, "  %sleg%d -- %sleg%d [label=\"p·p\"];\n", prefix, f.A, prefix, f.B)
		case KindPE:
			fmt.Fprintf(buf, "  %sleg%d -- %sleg%d [label=\"p·e\", style=dashed];\n", prefix, f.A, prefix, f.B)
		case KindEE:
			fmt.Fprintf(buf, "  %sleg%d -- %sleg%d [label=\"e·e\", style=bold];\n", prefix, f.A, prefix, f.B)
		}
	}
}

// RenderSVG renders a DOT graph produced by ToDOT or BasisDOT to SVG using
// Graphviz. Errors are wrapped with %w and suitable for errors.Is/As.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
