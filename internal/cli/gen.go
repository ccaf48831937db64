package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treeamps/treeamps/pkg/pipeline"
	"github.com/treeamps/treeamps/pkg/tensor"
)

// genCommand creates the gen command for enumerating a basis.
func (c *CLI) genCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		preset     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Enumerate the tensor-structure basis",
		Long: `Enumerate the scalar tensor structures for a given leg count.

Each structure is a product of dot-product factors: momentum-momentum
(p_i·p_j), momentum-polarization (p_i·e_j), and polarization-polarization
(e_i·e_j). The basis is filtered by the transversality choice and the
polarization pattern.

Under the one-per-leg pattern the factor degree and the number of e·e
contractions determine each other (degree = legs - ee), so giving either
one is enough. With neither given, the pure p·e basis is enumerated.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if preset != "" {
				if err := applyPreset(cmd, preset, &opts, &formatsStr); err != nil {
					return err
				}
			}
			opts.Formats = parseFormats(formatsStr)
			return c.runGen(cmd.Context(), opts, output, noCache)
		},
	}

	// Basis flags
	cmd.Flags().IntVarP(&opts.Legs, "legs", "n", pipeline.DefaultLegs, "number of external legs")
	cmd.Flags().IntVarP(&opts.Degree, "degree", "d", 0, "number of factors per structure (0 = infer)")
	cmd.Flags().IntVarP(&opts.EE, "ee", "e", 0, "number of e·e contractions (0 = infer)")
	cmd.Flags().StringVar(&opts.Transversality, "transversality", "", "transversality: forbid-self-dot (default), none")
	cmd.Flags().StringVar(&opts.PolPattern, "pol-pattern", "", "polarization pattern: one-per-leg (default), unrestricted")

	// Output flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): text (default), json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")

	// Cache flags
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	// Preset flag
	cmd.Flags().StringVar(&preset, "preset", "", "named preset or preset file to load defaults from")

	return cmd
}

// applyPreset fills in option values from a preset, skipping any flag the
// user set explicitly on the command line.
func applyPreset(cmd *cobra.Command, name string, opts *pipeline.Options, formatsStr *string) error {
	p, err := loadPreset(name)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("legs") && p.Gen.Legs != 0 {
		opts.Legs = p.Gen.Legs
	}
	if !flags.Changed("degree") && p.Gen.Degree != 0 {
		opts.Degree = p.Gen.Degree
	}
	if !flags.Changed("ee") && p.Gen.EE != 0 {
		opts.EE = p.Gen.EE
	}
	if !flags.Changed("transversality") && p.Gen.Transversality != "" {
		opts.Transversality = p.Gen.Transversality
	}
	if !flags.Changed("pol-pattern") && p.Gen.PolPattern != "" {
		opts.PolPattern = p.Gen.PolPattern
	}
	if !flags.Changed("format") && p.Gen.Format != "" {
		*formatsStr = p.Gen.Format
	}
	return nil
}

// runGen executes the pipeline and writes output.
func (c *CLI) runGen(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Enumerating basis (n=%d)...", opts.Legs))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Enumeration failed")
		return fmt.Errorf("gen: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	checkKnownCount(opts, result.Stats.StructureCount)

	paths, err := writeArtifacts(result, opts, output)
	if err != nil {
		return err
	}

	counts := result.Stats.CatalogCounts
	printStats(result.Stats.StructureCount, counts.PP+counts.PE+counts.EE, result.CacheInfo.BasisHit)
	for _, path := range paths {
		if strings.HasSuffix(path, ".json") {
			printNextStep("Browse", "treeamps browse "+path)
			break
		}
	}
	return nil
}

// checkKnownCount compares the result against independently derived
// reference counts where one exists.
func checkKnownCount(opts pipeline.Options, got int) {
	onePerLeg := opts.TensorConfig().PolPattern == tensor.OnePerLeg
	want, ok := pipeline.KnownCount(opts.Legs, opts.Degree, opts.EE, onePerLeg)
	if !ok {
		return
	}
	if got != want {
		printWarning("structure count %d does not match the reference count %d", got, want)
		return
	}
	printDetail("reference count check: %d structures, as expected", want)
}

// writeArtifacts writes each rendered format to its destination and returns
// the file paths written. Text and JSON go to stdout when no output path is
// given; dot and svg always land in files.
func writeArtifacts(result *pipeline.Result, opts pipeline.Options, output string) ([]string, error) {
	var paths []string
	for _, format := range opts.Formats {
		data := result.Artifacts[format]

		if output == "" && (format == pipeline.FormatText || format == pipeline.FormatJSON) {
			os.Stdout.Write(data)
			continue
		}

		path := artifactPath(output, format, opts, len(opts.Formats) > 1)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath derives the output file path for a format.
func artifactPath(output, format string, opts pipeline.Options, multiple bool) string {
	if output == "" {
		return fmt.Sprintf("basis_n%d_d%d_ee%d.%s", opts.Legs, opts.Degree, opts.EE, format)
	}
	if !multiple {
		return output
	}
	// Multiple formats share a base path; strip a known extension first.
	ext := filepath.Ext(output)
	base := output
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(output, ext)
	}
	return base + "." + format
}
