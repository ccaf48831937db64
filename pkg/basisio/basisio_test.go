package basisio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/treeamps/treeamps/pkg/tensor"
)

func TestRoundTrip(t *testing.T) {
	cfg := tensor.Config{Legs: 4, Transversality: tensor.ForbidSelfDot, PolPattern: tensor.OnePerLeg}
	structures := tensor.Generate(cfg, 3, 1)

	var buf bytes.Buffer
	if err := WriteJSON(New(cfg, 3, 1, structures), &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	gotCfg, err := back.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if gotCfg != cfg {
		t.Errorf("Config = %+v, want %+v", gotCfg, cfg)
	}
	if back.Degree != 3 || back.EE != 1 {
		t.Errorf("Degree=%d EE=%d, want 3 and 1", back.Degree, back.EE)
	}

	decoded, err := back.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != len(structures) {
		t.Fatalf("got %d structures, want %d", len(decoded), len(structures))
	}
	for i := range structures {
		if decoded[i].Compare(structures[i]) != 0 {
			t.Errorf("structure %d = %v, want %v", i, decoded[i], structures[i])
		}
		if decoded[i].EEContractions != structures[i].EEContractions {
			t.Errorf("structure %d EE = %d, want %d", i, decoded[i].EEContractions, structures[i].EEContractions)
		}
	}
}

func TestWriteJSON_IncludesPretty(t *testing.T) {
	cfg := tensor.DefaultConfig()
	structures := tensor.Generate(cfg, 3, 0)

	var buf bytes.Buffer
	if err := WriteJSON(New(cfg, 3, 0, structures), &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	if !strings.Contains(buf.String(), `"pretty": "(p1·e2) · (p2·e1) · (p2·e3)"`) {
		t.Errorf("output missing pretty form:\n%s", buf.String())
	}
}

func TestDecode_UnknownKind(t *testing.T) {
	b := &Basis{Structures: []Structure{{Factors: []Factor{{Kind: "xx", A: 1, B: 2}}}}}
	if _, err := b.Decode(); err == nil {
		t.Error("expected error for unknown factor kind")
	}
}

func TestExportImportJSON(t *testing.T) {
	cfg := tensor.Config{Legs: 4, Transversality: tensor.ForbidSelfDot, PolPattern: tensor.OnePerLeg}
	structures := tensor.Generate(cfg, 2, 2)

	path := t.TempDir() + "/basis.json"
	if err := ExportJSON(New(cfg, 2, 2, structures), path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if len(back.Structures) != 3 {
		t.Errorf("got %d structures, want 3", len(back.Structures))
	}
}
