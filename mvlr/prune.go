package mvlr

import "github.com/EnergieID/OpenEnergyID/timeframe"

// prune removes statistically insignificant terms from a fit. While any
// non-intercept parameter has a p-value above pMax, the first such term
// (in parameter order) is dropped and the model refitted. The intercept is
// never removed, so the result may be the intercept-only fit.
func prune(frame *timeframe.Frame, y string, fit *FitResult, pMax float64) (*FitResult, error) {
	for {
		name := ""
		for _, p := range fit.TermParams() {
			if p.PValue > pMax {
				name = p.Name
				break
			}
		}
		if name == "" {
			return fit, nil
		}
		refit, err := fitOLS(frame, y, fit.Spec.Without(name))
		if err != nil {
			return nil, err
		}
		fit = refit
	}
}
