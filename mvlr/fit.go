package mvlr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/EnergieID/OpenEnergyID/timeframe"
)

// interceptName labels the implicit intercept parameter in fit results.
const interceptName = "Intercept"

// Parameter holds the estimate and inference statistics for a single model
// parameter.
type Parameter struct {
	Name   string
	Coef   float64
	StdErr float64
	TStat  float64
	PValue float64
}

// FitResult is an immutable ordinary least squares fit. Params holds the
// intercept first, followed by the spec's terms in order.
type FitResult struct {
	Spec   ModelSpec
	Params []Parameter

	R2      float64
	R2Adj   float64
	FStat   float64 // NaN for the intercept-only model
	FPValue float64 // NaN for the intercept-only model
	LogLik  float64
	AIC     float64
	BIC     float64

	NObs int
	DF   int // residual degrees of freedom

	fitted    []float64
	residuals []float64
}

// fitOLS fits the spec to the frame by ordinary least squares, solving the
// normal equations beta = (X'X)^-1 X'y. It returns ErrInsufficientData
// when there are no residual degrees of freedom, and ErrSingularMatrix
// when X'X is not invertible.
func fitOLS(frame *timeframe.Frame, y string, spec ModelSpec) (*FitResult, error) {
	yvals, ok := frame.Column(y)
	if !ok {
		return nil, fmt.Errorf("mvlr: no column %q in frame", y)
	}

	n := frame.Len()
	k := spec.NumTerms() + 1
	df := n - k
	if df <= 0 {
		return nil, fmt.Errorf("%w: %d observations for %d parameters", ErrInsufficientData, n, k)
	}

	// Design matrix: intercept column followed by one column per term.
	X := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
	}
	for j, term := range spec.Terms() {
		col, ok := frame.Column(term.Name)
		if !ok {
			return nil, fmt.Errorf("mvlr: no column %q in frame", term.Name)
		}
		for i := 0; i < n; i++ {
			X.Set(i, j+1, col[i])
		}
	}
	yvec := mat.NewVecDense(n, append([]float64(nil), yvals...))

	var xtx mat.Dense
	xtx.Mul(X.T(), X)
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		// gonum reports near-singular matrices as a mat.Condition error;
		// an ill-conditioned trial is skipped the same as an exactly
		// collinear one.
		return nil, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), yvec)
	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	var fittedVec mat.VecDense
	fittedVec.MulVec(X, &beta)

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	sse := 0.0
	mean := 0.0
	for i := 0; i < n; i++ {
		mean += yvals[i]
	}
	mean /= float64(n)
	sst := 0.0
	for i := 0; i < n; i++ {
		fitted[i] = fittedVec.AtVec(i)
		residuals[i] = yvals[i] - fitted[i]
		sse += residuals[i] * residuals[i]
		dev := yvals[i] - mean
		sst += dev * dev
	}

	r2 := 0.0
	if sst > 0 {
		r2 = 1 - sse/sst
	}
	r2adj := 1 - (1-r2)*float64(n-1)/float64(df)

	// Per-parameter inference from the residual variance.
	sigma2 := sse / float64(df)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	params := make([]Parameter, k)
	names := append([]string{interceptName}, spec.TermNames()...)
	for j := 0; j < k; j++ {
		coef := beta.AtVec(j)
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		var tstat, pval float64
		switch {
		case se > 0:
			tstat = coef / se
			pval = 2 * (1 - tDist.CDF(math.Abs(tstat)))
		case coef == 0:
			tstat, pval = 0, 1
		default:
			// Perfect fit: the estimate has no sampling variance.
			tstat, pval = math.Inf(sign(coef)), 0
		}
		params[j] = Parameter{Name: names[j], Coef: coef, StdErr: se, TStat: tstat, PValue: pval}
	}

	fstat, fpval := fStatistic(sse, sst, k, df)
	loglik, aic, bic := informationCriteria(sse, n, k)

	return &FitResult{
		Spec:      spec,
		Params:    params,
		R2:        r2,
		R2Adj:     r2adj,
		FStat:     fstat,
		FPValue:   fpval,
		LogLik:    loglik,
		AIC:       aic,
		BIC:       bic,
		NObs:      n,
		DF:        df,
		fitted:    fitted,
		residuals: residuals,
	}, nil
}

// fStatistic computes the regression F-statistic and its p-value. It is
// undefined (NaN) for the intercept-only model.
func fStatistic(sse, sst float64, k, df int) (fstat, pval float64) {
	if k <= 1 {
		return math.NaN(), math.NaN()
	}
	num := (sst - sse) / float64(k-1)
	if num < 0 {
		num = 0
	}
	den := sse / float64(df)
	if den <= 0 {
		// Perfect fit.
		return math.Inf(1), 0
	}
	fstat = num / den
	fDist := distuv.F{D1: float64(k - 1), D2: float64(df)}
	pval = 1 - fDist.CDF(fstat)
	if pval < 0 {
		pval = 0
	}
	if pval > 1 {
		pval = 1
	}
	return fstat, pval
}

// informationCriteria computes the Gaussian log-likelihood with the MLE
// variance SSE/n, and the derived AIC and BIC. This is the statsmodels
// convention, so scores are comparable across fits of the same data.
func informationCriteria(sse float64, n, k int) (loglik, aic, bic float64) {
	nf := float64(n)
	kf := float64(k)
	sigma2 := sse / nf
	if sigma2 <= 0 {
		// A perfect fit has unbounded likelihood; -Inf criteria make it
		// preferred over any imperfect fit.
		return math.Inf(1), math.Inf(-1), math.Inf(-1)
	}
	loglik = -nf / 2 * (math.Log(2*math.Pi) + math.Log(sigma2) + 1)
	aic = -2*loglik + 2*kf
	bic = -2*loglik + kf*math.Log(nf)
	return loglik, aic, bic
}

// Param returns the parameter with the given name. The intercept is named
// "Intercept".
func (r *FitResult) Param(name string) (Parameter, bool) {
	for _, p := range r.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Intercept returns the intercept parameter.
func (r *FitResult) Intercept() Parameter {
	return r.Params[0]
}

// TermParams returns the non-intercept parameters in model order.
func (r *FitResult) TermParams() []Parameter {
	return r.Params[1:]
}

// FittedValues returns the fitted values.
func (r *FitResult) FittedValues() []float64 {
	return append([]float64(nil), r.fitted...)
}

// Residuals returns the fit residuals.
func (r *FitResult) Residuals() []float64 {
	return append([]float64(nil), r.residuals...)
}

// Predict evaluates the fitted model for every row of the frame. The frame
// must contain a column for each term of the spec.
func (r *FitResult) Predict(frame *timeframe.Frame) ([]float64, error) {
	n := frame.Len()
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Params[0].Coef
	}
	for j, term := range r.Spec.Terms() {
		col, ok := frame.Column(term.Name)
		if !ok {
			return nil, fmt.Errorf("mvlr: no column %q in frame", term.Name)
		}
		coef := r.Params[j+1].Coef
		for i := 0; i < n; i++ {
			out[i] += coef * col[i]
		}
	}
	return out, nil
}

// predictRow evaluates the fitted model for a single row of the frame.
func (r *FitResult) predictRow(frame *timeframe.Frame, i int) (float64, error) {
	pred := r.Params[0].Coef
	for j, term := range r.Spec.Terms() {
		col, ok := frame.Column(term.Name)
		if !ok {
			return 0, fmt.Errorf("mvlr: no column %q in frame", term.Name)
		}
		pred += r.Params[j+1].Coef * col[i]
	}
	return pred, nil
}

// ConfInt returns the two-sided confidence interval for the named
// parameter at the given confidence level (for example 0.95).
func (r *FitResult) ConfInt(name string, level float64) (lower, upper float64, err error) {
	p, ok := r.Param(name)
	if !ok {
		return 0, 0, fmt.Errorf("mvlr: no parameter %q", name)
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(r.DF)}
	q := tDist.Quantile(0.5 + level/2)
	return p.Coef - q*p.StdErr, p.Coef + q*p.StdErr, nil
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
