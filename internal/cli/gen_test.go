package cli

import (
	"testing"

	"github.com/treeamps/treeamps/pkg/pipeline"
)

func TestArtifactPath(t *testing.T) {
	opts := pipeline.Options{Legs: 4, Degree: 3, EE: 1}

	tests := []struct {
		name     string
		output   string
		format   string
		multiple bool
		want     string
	}{
		{
			name:   "derived name without output",
			format: "dot",
			want:   "basis_n4_d3_ee1.dot",
		},
		{
			name:   "explicit single output",
			output: "out.svg",
			format: "svg",
			want:   "out.svg",
		},
		{
			name:     "multiple formats strip extension",
			output:   "out.svg",
			format:   "dot",
			multiple: true,
			want:     "out.dot",
		},
		{
			name:     "multiple formats plain base",
			output:   "results/basis",
			format:   "json",
			multiple: true,
			want:     "results/basis.json",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPath(tt.output, tt.format, opts, tt.multiple); got != tt.want {
				t.Errorf("artifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
