// Package heuristics implements the non-AI mammography-likeness scorer.
//
// Five independent pixel statistics (grayscale-ness, local-contrast texture,
// curved-structure density, corner-background uniformity, histogram shape)
// each yield a confidence in [0, 1]; their unweighted mean, thresholded
// strictly at the configured cutoff, decides whether an upload plausibly is
// a mammogram before any AI analysis is attempted.
//
// The scorer uses no learned model and no hidden state. Every threshold
// lives in Config, every sub-score that cannot run degrades to a documented
// fallback value (flagged as Degraded rather than silently blended in), and
// scoring the same decoded image twice yields identical results.
package heuristics
