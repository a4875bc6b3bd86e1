package mvlr

import (
	"errors"
	"io"
	"log/slog"

	"github.com/EnergieID/OpenEnergyID/timeframe"
)

// SelectorConfig holds configuration for a model selection run.
type SelectorConfig struct {
	// PMax is the maximum acceptable p-value for a term to survive
	// pruning (default: 0.05).
	PMax float64

	// CrossValidation selects models by mean leave-one-out error instead
	// of BIC. Only supported for samples of fewer than 15 observations.
	CrossValidation bool

	// Logger, when set, traces selection rounds at debug level.
	Logger *slog.Logger
}

// DefaultSelectorConfig returns the default selection configuration.
func DefaultSelectorConfig() *SelectorConfig {
	return &SelectorConfig{PMax: 0.05}
}

func (c *SelectorConfig) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Selection is the outcome of a selection run. Fits records the incumbent
// model after every accepted round, starting with the intercept-only
// baseline; the last entry is the selected model. In cross-validation mode
// CVErrors records the matching mean leave-one-out errors.
type Selection struct {
	Fits     []*FitResult
	CVErrors []float64
}

// Final returns the selected model.
func (s *Selection) Final() *FitResult {
	return s.Fits[len(s.Fits)-1]
}

// Select builds a model of y by greedy forward selection over the
// candidate terms. Starting from the intercept-only baseline, each round
// fits one trial per remaining candidate, picks the trial with the lowest
// BIC, prunes insignificant terms from it, and accepts it as the new
// incumbent if it still improves on the previous round. Selection stops
// when the pool is exhausted or no trial improves the incumbent.
//
// Trials whose design matrix is singular are skipped, as are trials that
// fit a negative coefficient for a term that does not allow one. When an
// accepted term carries a SingleUsePrefix, all pooled candidates sharing
// the prefix are withdrawn.
func Select(frame *timeframe.Frame, y string, candidates []CandidateTerm, cfg *SelectorConfig) (*Selection, error) {
	if cfg == nil {
		cfg = DefaultSelectorConfig()
	}
	if cfg.CrossValidation {
		return selectCrossValidation(frame, y, candidates, cfg)
	}
	return selectBIC(frame, y, candidates, cfg)
}

func selectBIC(frame *timeframe.Frame, y string, candidates []CandidateTerm, cfg *SelectorConfig) (*Selection, error) {
	logger := cfg.logger()

	baseline, err := fitOLS(frame, y, ModelSpec{})
	if err != nil {
		return nil, err
	}
	sel := &Selection{Fits: []*FitResult{baseline}}

	p := newPool(candidates)
	for !p.empty() {
		incumbent := sel.Final()

		// Ties resolve to the first candidate in pool order; only a
		// strictly lower BIC than the incumbent's counts as improvement.
		var best *FitResult
		var bestTerm CandidateTerm
		bestBIC := incumbent.BIC
		for _, term := range p.all() {
			trial, err := fitOLS(frame, y, incumbent.Spec.With(term))
			if errors.Is(err, ErrSingularMatrix) {
				logger.Debug("trial skipped", "term", term.Name, "reason", "singular design matrix")
				continue
			}
			if err != nil {
				return nil, err
			}
			if !term.AllowNegativeCoefficient {
				if param, ok := trial.Param(term.Name); ok && param.Coef < 0 {
					logger.Debug("trial skipped", "term", term.Name, "reason", "negative coefficient", "coef", param.Coef)
					continue
				}
			}
			if trial.BIC < bestBIC {
				bestBIC = trial.BIC
				best = trial
				bestTerm = term
			}
		}
		if best == nil {
			logger.Debug("selection stopped", "reason", "no improving trial", "terms", incumbent.Spec.NumTerms())
			break
		}

		// The winning trial may contain insignificant parameters; correct
		// it before accepting.
		pruned, err := prune(frame, y, best, cfg.PMax)
		if err != nil {
			return nil, err
		}
		if pruned.Spec.NumTerms() == incumbent.Spec.NumTerms() {
			logger.Debug("selection stopped", "reason", "no net improvement after pruning", "terms", incumbent.Spec.NumTerms())
			break
		}

		sel.Fits = append(sel.Fits, pruned)
		p.remove(bestTerm.Name)
		if bestTerm.SingleUsePrefix != "" {
			p.removePrefix(bestTerm.SingleUsePrefix)
		}
		logger.Debug("round accepted", "term", bestTerm.Name, "bic", pruned.BIC, "r2_adj", pruned.R2Adj, "terms", pruned.Spec.NumTerms())
	}
	return sel, nil
}
