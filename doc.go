// Package bridgenull analyzes families of matrix-pair edges (N, D) that
// model the generators of a non-commuting geometric cycle.
//
// It answers three questions:
//
//   - Which bridge parameter R closes the regularized cycle
//     U = exp(ε(D_agg + R·N_agg)) as ε → 0, and how fast does the residual
//     ‖U − I‖ vanish (ε-continuation with a power-law fit)?
//   - Which simplex weights over the edges push the residual floor lowest?
//   - Is one generator an exact scalar multiple of another (exact null)?
//
// Packages:
//
//	matrix/     - dense matrices, kernels, matrix exponential, norms, Jacobi eigen
//	edges/      - Edge and Set, seeded generators, aggregation, commutator diagnostics
//	residual/   - cycle residual in Frobenius or spectral norm
//	bridge/     - ε schedules, golden-section search, continuation and power-law fit
//	weights/    - simplex projection and projected finite-difference descent
//	jointdiag/  - Jacobi joint diagonalization of a generator pair
//	proportion/ - proportionality and exact-null tests
//	config/     - YAML run description
//	report/     - end-to-end execution and YAML records
//	metrics/    - prometheus hooks for solver progress
//
// Quick start:
//
//	set, _ := edges.Generate(3, 4, 42)
//	tr, _ := bridge.Run(set, bridge.DefaultOptions())
//	fmt.Printf("α = %.3f ± %.3f, R* = %.6f\n", tr.Fit.Alpha, tr.Fit.AlphaSE, tr.RLast)
//
// Runnable programs live under examples/.
package bridgenull
