// SPDX-License-Identifier: MIT

// Package report runs a configured analysis end to end and stores the
// outcome as a plain Record that can be written and read back as YAML.
// Plotting and dashboards consume these records; none live here.
package report
