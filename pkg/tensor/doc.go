// Package tensor enumerates irreducible scalar tensor structures for
// tree-level scattering amplitudes.
//
// A tensor structure is a product of Lorentz-invariant dot products between
// the momentum (p) and polarization (e) vectors of n external legs. The
// package builds the catalog of permissible scalar factors under physical
// constraints (momentum conservation, transversality, basis conventions)
// and searches factor combinations of a fixed degree, returning a sorted,
// duplicate-free basis.
//
// # Model
//
// Legs are indexed 1..n. A [ScalarFactor] is one dot product of kind PP
// (p·p), PE (p·e), or EE (e·e) between two legs. A [TensorStructure] is a
// multiset of factors, held canonically as a sorted slice.
//
// # Constraints
//
// Momentum conservation eliminates one leg's momentum: no factor may use
// p_n. Transversality optionally forbids p_i·e_i. The one-polarization-
// per-leg convention requires every leg's polarization vector to appear in
// exactly one factor across the whole structure.
//
// # Usage
//
//	cfg := tensor.Config{Legs: 4, Transversality: tensor.ForbidSelfDot, PolPattern: tensor.OnePerLeg}
//	basis := tensor.Generate(cfg, 3, 1)
//	for _, t := range basis {
//		fmt.Println(t)
//	}
//
// Generation is pure and deterministic: identical inputs always produce an
// identical, identically ordered basis. The search is synchronous and
// single-threaded; callers bound cost by choosing small leg counts.
package tensor
