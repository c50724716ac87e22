// SPDX-License-Identifier: MIT

// Package bridge locates the bridge parameter R that best closes a cycle of
// edge couplings and tracks how the closure residual vanishes as the
// regularization ε goes to zero.
//
// A Run walks a strictly decreasing ε schedule. At each ε it minimizes
//
//	residual(R) = ‖exp(ε(D_agg + R·N_agg)) − I‖
//
// by golden-section search, records the Sample, and afterwards fits
// residual_min ≈ C·ε^α in log–log space. Samples whose search did not settle
// or whose bracket never enclosed an interior minimum are flagged rather than
// failing the run.
//
// Quick start:
//
//	set, _ := edges.Generate(3, 4, 42)
//	tr, err := bridge.Run(set, bridge.DefaultOptions())
//	if err != nil { ... }
//	fmt.Println(tr.Fit.Alpha, tr.Fit.AlphaSE, tr.RLast)
//
// RunSeeds repeats independent runs over many seeds with bounded parallelism.
package bridge
