package tensor_test

import (
	"fmt"

	"github.com/treeamps/treeamps/pkg/tensor"
)

func ExampleGenerate() {
	// Default config: 3 legs, transverse polarizations, one polarization
	// per leg. Degree 3 with no EE contractions is the pure PE basis.
	basis := tensor.Generate(tensor.DefaultConfig(), 3, 0)
	for _, t := range basis {
		fmt.Println(t)
	}
	// Output:
	// (p1·e2) · (p2·e1) · (p2·e3)
}

func ExampleGenerate_pureEE() {
	// Four legs, two EE contractions: the three perfect matchings.
	cfg := tensor.Config{Legs: 4, Transversality: tensor.ForbidSelfDot, PolPattern: tensor.OnePerLeg}
	for _, t := range tensor.Generate(cfg, 2, 2) {
		fmt.Println(t)
	}
	// Output:
	// (e1·e2) · (e3·e4)
	// (e1·e3) · (e2·e4)
	// (e1·e4) · (e2·e3)
}

func ExampleBuildCatalog() {
	cfg := tensor.Config{Legs: 4, Transversality: tensor.ForbidSelfDot}
	counts := tensor.BuildCatalog(cfg).Counts()
	fmt.Printf("pp=%d pe=%d ee=%d\n", counts.PP, counts.PE, counts.EE)
	// Output:
	// pp=3 pe=8 ee=6
}

func ExampleScalarFactor_Compare() {
	// PP factors sort before PE, which sort before EE.
	factors := []tensor.ScalarFactor{tensor.EE(1, 2), tensor.PP(1, 2), tensor.PE(2, 1)}
	for _, f := range factors {
		fmt.Println(f, "compared to", factors[1], "=", f.Compare(factors[1]))
	}
	// Output:
	// (e1·e2) compared to (p1·p2) = 1
	// (p1·p2) compared to (p1·p2) = 0
	// (p2·e1) compared to (p1·p2) = 1
}
