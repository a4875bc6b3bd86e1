package mvlr

import (
	"errors"
	"fmt"
	"math"

	"github.com/EnergieID/OpenEnergyID/timeframe"
)

// maxCrossValidationRows bounds leave-one-out selection: scoring one trial
// costs a full refit per observation, so the mode is restricted to small
// samples.
const maxCrossValidationRows = 15

// selectCrossValidation mirrors selectBIC but scores each trial by its
// mean absolute leave-one-out prediction error instead of BIC. The
// accepted incumbent is always re-identified on the full sample. Unlike
// the BIC path, the winning trial is not pruned.
func selectCrossValidation(frame *timeframe.Frame, y string, candidates []CandidateTerm, cfg *SelectorConfig) (*Selection, error) {
	if frame.Len() >= maxCrossValidationRows {
		return nil, fmt.Errorf("%w: got %d", ErrCrossValidationUnsupported, frame.Len())
	}
	logger := cfg.logger()

	baseline, err := fitOLS(frame, y, ModelSpec{})
	if err != nil {
		return nil, err
	}
	baselineErr, err := crossValError(frame, y, ModelSpec{})
	if err != nil {
		return nil, err
	}
	sel := &Selection{
		Fits:     []*FitResult{baseline},
		CVErrors: []float64{baselineErr},
	}

	p := newPool(candidates)
	for !p.empty() {
		incumbent := sel.Final()

		var best *FitResult
		var bestTerm CandidateTerm
		bestScore := sel.CVErrors[len(sel.CVErrors)-1]
		for _, term := range p.all() {
			spec := incumbent.Spec.With(term)
			full, err := fitOLS(frame, y, spec)
			if errors.Is(err, ErrSingularMatrix) {
				logger.Debug("trial skipped", "term", term.Name, "reason", "singular design matrix")
				continue
			}
			if err != nil {
				return nil, err
			}
			if !term.AllowNegativeCoefficient {
				if param, ok := full.Param(term.Name); ok && param.Coef < 0 {
					logger.Debug("trial skipped", "term", term.Name, "reason", "negative coefficient", "coef", param.Coef)
					continue
				}
			}
			score, err := crossValError(frame, y, spec)
			if errors.Is(err, ErrSingularMatrix) {
				logger.Debug("trial skipped", "term", term.Name, "reason", "singular leave-one-out refit")
				continue
			}
			if err != nil {
				return nil, err
			}
			if score < bestScore {
				bestScore = score
				best = full
				bestTerm = term
			}
		}
		if best == nil {
			logger.Debug("selection stopped", "reason", "no improving trial", "terms", incumbent.Spec.NumTerms())
			break
		}

		sel.Fits = append(sel.Fits, best)
		sel.CVErrors = append(sel.CVErrors, bestScore)
		p.remove(bestTerm.Name)
		if bestTerm.SingleUsePrefix != "" {
			p.removePrefix(bestTerm.SingleUsePrefix)
		}
		logger.Debug("round accepted", "term", bestTerm.Name, "cv_error", bestScore, "terms", best.Spec.NumTerms())
	}
	return sel, nil
}

// crossValError computes the mean absolute leave-one-out prediction error
// of the spec: refit with each observation excluded, predict it, average
// the absolute errors. The per-observation refits are independent of one
// another; they run sequentially because samples are capped at 15 rows.
func crossValError(frame *timeframe.Frame, y string, spec ModelSpec) (float64, error) {
	yvals, ok := frame.Column(y)
	if !ok {
		return 0, fmt.Errorf("mvlr: no column %q in frame", y)
	}
	n := frame.Len()
	total := 0.0
	for i := 0; i < n; i++ {
		reduced, err := frame.DropRow(i)
		if err != nil {
			return 0, err
		}
		fit, err := fitOLS(reduced, y, spec)
		if err != nil {
			return 0, err
		}
		pred, err := fit.predictRow(frame, i)
		if err != nil {
			return 0, err
		}
		total += math.Abs(pred - yvals[i])
	}
	return total / float64(n), nil
}
