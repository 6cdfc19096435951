// Package synthetic builds deterministic CMP gathers for tests, benchmarks
// and demonstrations.
//
// Each reflector is a Ricker wavelet placed on the hyperbola
// t(l) = sqrt(t0² + l²/v²). Optional Gaussian noise uses a seeded source, so
// the same Config always yields bit-identical data.
package synthetic
