package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treeamps/treeamps/pkg/errors"
	"github.com/treeamps/treeamps/pkg/tensor"
)

// catalogCommand creates the catalog command for inspecting the admissible
// dot-product factors.
func (c *CLI) catalogCommand() *cobra.Command {
	var (
		legs           int
		transversality string
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the admissible dot-product factors",
		Long: `Print the catalog of dot-product factors a basis is built from.

The catalog lists, in canonical order, the momentum-momentum, momentum-
polarization, and polarization-polarization factors that survive the
momentum elimination and the transversality choice for a given leg count.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(legs, transversality)
		},
	}

	cmd.Flags().IntVarP(&legs, "legs", "n", 3, "number of external legs")
	cmd.Flags().StringVar(&transversality, "transversality", "", "transversality: forbid-self-dot (default), none")

	return cmd
}

// runCatalog builds and prints the factor catalog.
func runCatalog(legs int, transversality string) error {
	if err := errors.ValidateLegs(legs); err != nil {
		return err
	}
	tv, err := tensor.ParseTransversality(transversality)
	if err != nil {
		return err
	}

	cfg := tensor.Config{Legs: legs, Transversality: tv, PolPattern: tensor.OnePerLeg}
	cat := tensor.BuildCatalog(cfg)
	counts := cat.Counts()

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Factor catalog (n=%d, transversality=%s)", legs, tv)))
	printNewline()
	printCatalogSection("p·p", cat.PP)
	printCatalogSection("p·e", cat.PE)
	printCatalogSection("e·e", cat.EE)
	printDetail("total: %d (pp=%d, pe=%d, ee=%d)",
		counts.PP+counts.PE+counts.EE, counts.PP, counts.PE, counts.EE)
	return nil
}

// printCatalogSection prints one kind's factors on a single labeled line.
func printCatalogSection(label string, factors []tensor.ScalarFactor) {
	if len(factors) == 0 {
		printKeyValue(label, StyleDim.Render("(none)"))
		return
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = f.String()
	}
	printKeyValue(label, strings.Join(parts, "  "))
}
