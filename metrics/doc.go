// SPDX-License-Identifier: MIT

// Package metrics exposes solver progress as prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	col, _ := metrics.New(reg)
//	opts := bridge.DefaultOptions()
//	opts.OnSample = col.OnSample
package metrics
