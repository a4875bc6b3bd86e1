package mvlr

import (
	"github.com/EnergieID/OpenEnergyID/timeframe"
)

// ConfidenceInterval is a two-sided confidence interval for a coefficient.
type ConfidenceInterval struct {
	Confidence float64 `json:"confidence"`
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
}

// IndependentVariableResult reports a fitted model parameter.
type IndependentVariableResult struct {
	Name               string             `json:"name"`
	Coef               float64            `json:"coef"`
	TStat              float64            `json:"tStat"`
	PValue             float64            `json:"pValue"`
	StdErr             float64            `json:"stdErr"`
	ConfidenceInterval ConfidenceInterval `json:"confidenceInterval"`
}

// Result is the report of an accepted model.
type Result struct {
	DependentVariable    string                      `json:"dependentVariable"`
	IndependentVariables []IndependentVariableResult `json:"independentVariables"`
	RSquared             float64                     `json:"rSquared"`
	RSquaredAdjusted     float64                     `json:"rSquaredAdjusted"`
	FStat                float64                     `json:"fStat"`
	ProbFStat            float64                     `json:"probFStat"`
	Intercept            IndependentVariableResult   `json:"intercept"`
	Granularity          timeframe.Granularity       `json:"granularity"`

	// Frame is the analyzed data restricted to the used terms plus the
	// dependent variable, for audit and plotting by the caller.
	Frame *timeframe.Frame `json:"frame"`
}

// newResult builds the report for an accepted fit on the frame it was
// fitted to.
func newResult(fit *FitResult, frame *timeframe.Frame, y string, g timeframe.Granularity, confidence float64) (*Result, error) {
	params := make([]IndependentVariableResult, 0, fit.Spec.NumTerms())
	for _, p := range fit.TermParams() {
		ivr, err := parameterResult(fit, p, confidence)
		if err != nil {
			return nil, err
		}
		params = append(params, ivr)
	}
	intercept, err := parameterResult(fit, fit.Intercept(), confidence)
	if err != nil {
		return nil, err
	}

	columns := append(fit.Spec.TermNames(), y)
	subset, err := frame.Select(columns...)
	if err != nil {
		return nil, err
	}

	return &Result{
		DependentVariable:    y,
		IndependentVariables: params,
		RSquared:             fit.R2,
		RSquaredAdjusted:     fit.R2Adj,
		FStat:                fit.FStat,
		ProbFStat:            fit.FPValue,
		Intercept:            intercept,
		Granularity:          g,
		Frame:                subset,
	}, nil
}

func parameterResult(fit *FitResult, p Parameter, confidence float64) (IndependentVariableResult, error) {
	lower, upper, err := fit.ConfInt(p.Name, confidence)
	if err != nil {
		return IndependentVariableResult{}, err
	}
	return IndependentVariableResult{
		Name:   p.Name,
		Coef:   p.Coef,
		TStat:  p.TStat,
		PValue: p.PValue,
		StdErr: p.StdErr,
		ConfidenceInterval: ConfidenceInterval{
			Confidence: confidence,
			Lower:      lower,
			Upper:      upper,
		},
	}, nil
}
