// Package pkg provides the core libraries for treeamps basis enumeration.
//
// # Overview
//
// Treeamps enumerates the independent scalar tensor structures that span
// tree-level amplitude bases. A tensor structure is a product of
// Lorentz-invariant dot products of external momenta (p) and polarization
// vectors (e). The pkg directory is organized into:
//
//  1. [tensor] - Domain logic (factor catalog, backtracking enumeration, DOT rendering)
//  2. [basisio] - JSON serialization of generated bases
//  3. [pipeline] - Orchestration (validate → generate → render) shared by CLI and API
//  4. [cache] - Result caching (file, Redis, null backends)
//  5. [errors] - Coded errors and input validation
//  6. [observability] - Pluggable hooks for metrics and tracing
//
// # Architecture
//
// The typical data flow through treeamps:
//
//	Config (legs, transversality, polarization pattern)
//	         ↓
//	    [tensor] package (build catalog, enumerate structures)
//	         ↓
//	    [pipeline] package (cache, hash, render)
//	         ↓
//	    text/JSON/DOT/SVG output
//
// # Quick Start
//
// Enumerate the four-gluon basis with one e·e contraction:
//
//	import "github.com/treeamps/treeamps/pkg/tensor"
//
//	cfg := tensor.Config{
//	    Legs:           4,
//	    Transversality: tensor.ForbidSelfDot,
//	    PolPattern:     tensor.OnePerLeg,
//	}
//	basis := tensor.Generate(cfg, 3, 1)
//	for _, s := range basis {
//	    fmt.Println(s) // e.g. "(e1·e2) · (p1·e3) · (p3·e4)"
//	}
//
// Or run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{Legs: 4, EE: 1})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/tensor/...   # Specific package
//	go test -run Example       # Examples only
//
// [tensor]: https://pkg.go.dev/github.com/treeamps/treeamps/pkg/tensor
// [basisio]: https://pkg.go.dev/github.com/treeamps/treeamps/pkg/basisio
// [pipeline]: https://pkg.go.dev/github.com/treeamps/treeamps/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/treeamps/treeamps/pkg/cache
// [errors]: https://pkg.go.dev/github.com/treeamps/treeamps/pkg/errors
// [observability]: https://pkg.go.dev/github.com/treeamps/treeamps/pkg/observability
package pkg
