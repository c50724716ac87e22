// SPDX-License-Identifier: MIT

// Package config reads a YAML run description and turns it into the option
// structs of the bridge, weights and jointdiag packages.
//
// Example document:
//
//	seed: 42
//	dimension: 3
//	edges: 4
//	bridge:
//	  norm: spectral
//	  schedule:
//	    explicit: [0.1, 0.05, 0.01, 0.005, 0.001]
//	weights:
//	  epsilon: 0.01
//	jointdiag:
//	  enabled: true
//
// Keys that are left out keep the values of Default.
package config
