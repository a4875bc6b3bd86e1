// Package openenergyid provides multivariable linear regression modeling
// of energy consumption data.
//
// OpenEnergyID builds explanatory models of an energy signal (for example
// gas or electricity consumption) against candidate drivers such as
// weather degree days and calendar effects. Model search uses greedy
// forward selection scored by the Bayesian Information Criterion (BIC),
// with statistical-significance pruning and an optional leave-one-out
// cross-validation mode for small samples. A retry loop runs the search at
// multiple temporal granularities and accepts the first model that meets
// the configured quality thresholds.
//
// # Quick Start
//
// Fit a model from a prepared frame:
//
//	input := &mvlr.Input{
//	    DependentVariable: "use",
//	    IndependentVariables: []mvlr.IndependentVariable{
//	        {Name: "temperatureEquivalent", Variants: []string{"HDD_16.5", "HDD_15"}},
//	    },
//	    SingleUsePrefixes: []string{"HDD"},
//	    Granularities:     []timeframe.Granularity{timeframe.P7D, timeframe.P1M},
//	}
//	result, err := mvlr.FindBestModel(frame, input)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - mvlr: forward-selection multivariable linear regression
//   - timeframe: time-indexed data frames, granularities and resampling
package openenergyid
