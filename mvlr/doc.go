// Package mvlr builds multivariable linear regression models of an energy
// signal by greedy forward selection.
//
// The engine models a dependent variable (for example gas consumption)
// against candidate drivers such as heating degree days. Starting from an
// intercept-only model it adds one term per round, scoring trials by the
// Bayesian Information Criterion and pruning statistically insignificant
// terms from each accepted model. For small samples an optional
// leave-one-out cross-validation mode replaces the BIC score with the
// mean held-out prediction error.
//
// # Selection
//
// Run a single selection on a prepared frame:
//
//	candidates := []mvlr.CandidateTerm{
//	    {Name: "HDD_16.5", SingleUsePrefix: "HDD"},
//	    {Name: "HDD_15", SingleUsePrefix: "HDD"},
//	    {Name: "weekend", AllowNegativeCoefficient: true},
//	}
//	sel, err := mvlr.Select(frame, "use", candidates, mvlr.DefaultSelectorConfig())
//	fit := sel.Final()
//
// Every accepted round strictly lowers the model BIC and shrinks the
// candidate pool, so selection always terminates. Ties in BIC resolve to
// the candidate listed first.
//
// # Searching Across Granularities
//
// FindBestModel resamples the input frame to each configured granularity
// in turn and returns the first model meeting the validation parameters
// (minimum adjusted R-squared, maximum F p-value, maximum per-term
// p-value):
//
//	result, err := mvlr.FindBestModel(frame, &mvlr.Input{
//	    DependentVariable: "use",
//	    IndependentVariables: []mvlr.IndependentVariable{
//	        {Name: "temperatureEquivalent", Variants: []string{"HDD_16.5", "HDD_15"}},
//	    },
//	    SingleUsePrefixes: []string{"HDD"},
//	    Granularities:     []timeframe.Granularity{timeframe.P7D, timeframe.P1M},
//	})
//	var nvm *mvlr.NoValidModelError
//	if errors.As(err, &nvm) {
//	    // nvm.BestRSquaredAdj is the best adjusted R-squared seen
//	}
//
// An independent variable named "temperatureEquivalent" with variants like
// "HDD_16.5" or "CDD_0" is unpacked into per-variant degree-day columns
// before analysis.
package mvlr
