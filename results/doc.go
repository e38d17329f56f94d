// Package results drives repeated nested-sampling calculations and renders
// comparison tables.
//
// An Experiment (usually loaded from a YAML file) names the likelihood,
// prior, dimension and sampler settings. Compare executes the configured
// number of independent repeats for the standard sampler and for each
// requested dynamic-fraction variant, evaluates the configured estimators
// on every run, and reports per-variant means, standard deviations and the
// variance efficiency gain over the standard sampler.
//
// Repeats are embarrassingly parallel: each takes a derived random stream
// keyed by its variant and repeat index, so tables are reproducible for a
// fixed seed regardless of scheduling.
package results
