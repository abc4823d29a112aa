// Package generate produces synthetic scheduling instances for tests and
// benchmarks.
//
// Random draws jobs with uniform windows over a horizon; Valley splits the
// horizon into equal valleys and spreads the jobs round-robin across them;
// SmallDeterministic returns a fixed four-job instance.
//
// All generators take an explicit *rand.Rand, so a fixed seed reproduces an
// instance exactly. Generated instances are not guaranteed to be
// schedulable; filter them with pltr.Feasible.
package generate
