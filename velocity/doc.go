// Package velocity models picked stacking-velocity trends and candidate
// velocity grids.
//
// A Curve is a sparse, time-ordered list of (time ms, velocity m/s) picks.
// It is evaluated by linear interpolation between picks and by linear
// extrapolation of the first/last segment outside the picked time range.
//
// Grid helpers build and search candidate-velocity grids:
//
//	grid, _ := velocity.LinearGrid(1400, 5000, 181) // 20 m/s step
//	ix := velocity.Nearest(grid, 2012)             // → 31
//
// Velocities are always expressed in m/s at this package boundary; the
// coherency kernels convert to m/ms internally.
package velocity
