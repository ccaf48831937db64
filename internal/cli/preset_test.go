package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPresetFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gluon4.toml")
	content := `
[gen]
legs = 4
ee = 1
transversality = "forbid-self-dot"
pol_pattern = "one-per-leg"
format = "text,dot"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := loadPresetFile(path)
	if err != nil {
		t.Fatalf("loadPresetFile() error = %v", err)
	}

	if p.Gen.Legs != 4 {
		t.Errorf("Legs = %d, want 4", p.Gen.Legs)
	}
	if p.Gen.EE != 1 {
		t.Errorf("EE = %d, want 1", p.Gen.EE)
	}
	if p.Gen.Transversality != "forbid-self-dot" {
		t.Errorf("Transversality = %q, want forbid-self-dot", p.Gen.Transversality)
	}
	if p.Gen.Format != "text,dot" {
		t.Errorf("Format = %q, want text,dot", p.Gen.Format)
	}
}

func TestLoadPresetFileUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[gen]\nlegz = 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadPresetFile(path); err == nil {
		t.Error("loadPresetFile() should reject unknown keys")
	}
}

func TestLoadPresetByName(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName, "presets")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "quick.toml"), []byte("[gen]\nlegs = 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := loadPreset("quick")
	if err != nil {
		t.Fatalf("loadPreset() error = %v", err)
	}
	if p.Gen.Legs != 5 {
		t.Errorf("Legs = %d, want 5", p.Gen.Legs)
	}

	names, err := listPresets()
	if err != nil {
		t.Fatalf("listPresets() error = %v", err)
	}
	if len(names) != 1 || names[0] != "quick" {
		t.Errorf("listPresets() = %v, want [quick]", names)
	}
}

func TestLoadPresetMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := loadPreset("nonexistent"); err == nil {
		t.Error("loadPreset() should fail for a missing preset")
	}
}
