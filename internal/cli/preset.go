package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/treeamps/treeamps/pkg/errors"
)

// Preset is a named, reusable gen configuration stored as TOML under
// ~/.config/treeamps/presets/<name>.toml.
//
// Example:
//
//	[gen]
//	legs = 4
//	ee = 1
//	transversality = "forbid-self-dot"
//	pol_pattern = "one-per-leg"
//	format = "text,dot"
type Preset struct {
	Gen GenPreset `toml:"gen"`
}

// GenPreset mirrors the gen command's flags.
type GenPreset struct {
	Legs           int    `toml:"legs"`
	Degree         int    `toml:"degree"`
	EE             int    `toml:"ee"`
	Transversality string `toml:"transversality"`
	PolPattern     string `toml:"pol_pattern"`
	Format         string `toml:"format"`
}

// presetDir returns the preset directory.
func presetDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "presets"), nil
}

// loadPreset resolves name to a preset. A name containing a path separator
// or a .toml suffix is treated as a file path; anything else is looked up
// in the preset directory.
func loadPreset(name string) (*Preset, error) {
	path := name
	if !strings.ContainsRune(name, os.PathSeparator) && !strings.HasSuffix(name, ".toml") {
		dir, err := presetDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, name+".toml")
	}
	return loadPresetFile(path)
}

// loadPresetFile parses a preset TOML file.
func loadPresetFile(path string) (*Preset, error) {
	var p Preset
	meta, err := toml.DecodeFile(path, &p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "load preset %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidPreset, "preset %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &p, nil
}

// listPresets returns the names of all presets in the preset directory.
func listPresets() ([]string, error) {
	dir, err := presetDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names, nil
}

// =============================================================================
// Commands
// =============================================================================

// presetCommand creates the preset management command.
func (c *CLI) presetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage named gen presets",
	}

	cmd.AddCommand(c.presetListCommand())
	cmd.AddCommand(c.presetShowCommand())
	cmd.AddCommand(c.presetPathCommand())

	return cmd
}

// presetListCommand creates the "preset list" subcommand.
func (c *CLI) presetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := listPresets()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No presets found")
				dir, err := presetDir()
				if err == nil {
					printDetail("Directory: %s", dir)
				}
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

// presetShowCommand creates the "preset show" subcommand.
func (c *CLI) presetShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show a preset's configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPreset(args[0])
			if err != nil {
				return err
			}
			printKeyValue("legs", fmt.Sprintf("%d", p.Gen.Legs))
			printKeyValue("degree", fmt.Sprintf("%d", p.Gen.Degree))
			printKeyValue("ee", fmt.Sprintf("%d", p.Gen.EE))
			printKeyValue("transversality", p.Gen.Transversality)
			printKeyValue("pol_pattern", p.Gen.PolPattern)
			printKeyValue("format", p.Gen.Format)
			return nil
		},
	}
}

// presetPathCommand creates the "preset path" subcommand.
func (c *CLI) presetPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the preset directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := presetDir()
			if err != nil {
				return fmt.Errorf("get preset dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
