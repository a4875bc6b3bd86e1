package mvlr

import (
	"errors"

	"github.com/EnergieID/OpenEnergyID/timeframe"
)

// FindBestModel cycles through the input's granularities in order and
// returns the report of the first model that meets the validation
// parameters. For each granularity the frame is resampled (sum per column
// unless overridden) and a full selection run is performed; later
// granularities are never tried once a model is accepted.
//
// A granularity whose resampled frame leaves no degrees of freedom is
// skipped. If no granularity yields an acceptable model, the returned
// error is a *NoValidModelError carrying the best adjusted R-squared seen.
func FindBestModel(frame *timeframe.Frame, input *Input) (*Result, error) {
	if err := input.Validate(frame); err != nil {
		return nil, err
	}
	prepared, err := input.PrepareFrame(frame)
	if err != nil {
		return nil, err
	}

	cfg := &SelectorConfig{
		PMax:            input.pMax(),
		CrossValidation: input.CrossValidation,
		Logger:          input.Logger,
	}
	params := input.thresholds()
	candidates := input.CandidateTerms()

	bestSeen := 0.0
	for _, g := range input.Granularities {
		resampled, err := timeframe.Resample(prepared, g, input.Aggregations)
		if err != nil {
			return nil, err
		}
		sel, err := Select(resampled, input.DependentVariable, candidates, cfg)
		if errors.Is(err, ErrInsufficientData) {
			// Too few rows at this resolution; a coarser or finer
			// granularity may still work.
			continue
		}
		if err != nil {
			return nil, err
		}
		fit := sel.Final()
		if isValid(fit, params) {
			return newResult(fit, resampled, input.DependentVariable, g, input.confidence())
		}
		if fit.R2Adj > bestSeen {
			bestSeen = fit.R2Adj
		}
	}
	return nil, &NoValidModelError{BestRSquaredAdj: bestSeen}
}

// isValid checks a fit against all three acceptance thresholds. An
// intercept-only fit has a NaN F p-value; the comparison below does not
// trigger on NaN, so such fits are rejected by the R-squared gate instead.
func isValid(fit *FitResult, params ValidationParameters) bool {
	if fit.R2Adj < params.RSquared {
		return false
	}
	if fit.FPValue > params.FPValue {
		return false
	}
	for _, p := range fit.TermParams() {
		if p.PValue > params.PValues {
			return false
		}
	}
	return true
}
