// Package velan is an in-memory toolkit for seismic velocity analysis:
// measuring how well a common-midpoint gather lines up along hyperbolic
// moveout curves for a range of trial stacking velocities.
//
// What is inside?
//
//	A pure-Go numeric stack organized as small packages:
//		• matrix:    row-major Dense buffer, transpose, xxh3 checksum
//		• gather:    validated traces × samples container with times and offsets
//		• velocity:  picked velocity curves and candidate-grid helpers
//		• nmo:       hodograph sampler, NMO and LMO corrections
//		• coherency: pluggable NaN-aware coherency formulas
//		• semblance: windowed engine, vertical and residual coherency maps
//		• synthetic: deterministic Ricker-wavelet CMP gathers
//
// Every map is computed eagerly, in parallel over the velocity axis, and
// then frozen: accessors return copies. Results are bit-reproducible for any
// worker count.
//
// Quick example:
//
//	g, _ := synthetic.CMP(cfg)
//	grid, _ := velocity.LinearGrid(1400, 4000, 131)
//	m, _ := semblance.NewVerticalMap(g, grid, semblance.WithWindow(8))
//	peaks := m.MaxPerTime()
//
// The velan command (cmd/velan) wires the same flow to a YAML config and
// writes the result as msgpack.
package velan
