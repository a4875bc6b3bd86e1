package mvlr

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectConvergesOnSingleDriver(t *testing.T) {
	// Noiseless use = 2 + 3*HDD.
	frame := noiselessFrame(t)
	candidates := []CandidateTerm{{Name: "HDD", AllowNegativeCoefficient: true}}

	sel, err := Select(frame, "use", candidates, nil)
	require.NoError(t, err)

	// Baseline plus exactly one accepted round.
	require.Len(t, sel.Fits, 2)
	fit := sel.Final()
	require.Equal(t, []string{"HDD"}, fit.Spec.TermNames())
	assert.InDelta(t, 2.0, fit.Intercept().Coef, 1e-9)
	hdd, _ := fit.Param("HDD")
	assert.InDelta(t, 3.0, hdd.Coef, 1e-9)
	assert.InDelta(t, 1.0, fit.R2, 1e-12)
}

func TestSelectBICStrictlyDecreases(t *testing.T) {
	x1 := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	x2 := []float64{5, 2, 8, 1, 9, 3, 7, 2, 6, 4, 8, 1}
	y := make([]float64, 12)
	for i := range y {
		y[i] = 1.0 + 2.0*x1[i] + 0.5*x2[i] + float64(i%3-1)/20
	}
	frame := makeFrame(t, []string{"use", "x1", "x2"}, [][]float64{y, x1, x2})
	candidates := []CandidateTerm{
		{Name: "x1", AllowNegativeCoefficient: true},
		{Name: "x2", AllowNegativeCoefficient: true},
	}

	sel, err := Select(frame, "use", candidates, nil)
	require.NoError(t, err)
	require.Greater(t, len(sel.Fits), 1)

	for i := 1; i < len(sel.Fits); i++ {
		assert.Less(t, sel.Fits[i].BIC, sel.Fits[i-1].BIC,
			"round %d must lower the incumbent BIC", i)
	}
	assert.Equal(t, []string{"x1", "x2"}, sel.Final().Spec.TermNames())
}

func TestSelectSingleUsePrefixExclusion(t *testing.T) {
	// Two near-duplicate degree-day variants; only one may enter.
	hdd165 := []float64{12, 10, 8, 6, 5, 4, 3, 2, 1, 0}
	hdd15 := make([]float64, len(hdd165))
	for i, v := range hdd165 {
		h := v - 1.5 + float64(i%2)/10
		if h < 0 {
			h = 0
		}
		hdd15[i] = h
	}
	y := make([]float64, len(hdd165))
	for i := range y {
		y[i] = 2.0 + 3.0*hdd165[i] + float64(i%4-2)/10
	}
	frame := makeFrame(t, []string{"use", "HDD_16.5", "HDD_15"}, [][]float64{y, hdd165, hdd15})
	candidates := []CandidateTerm{
		{Name: "HDD_16.5", SingleUsePrefix: "HDD"},
		{Name: "HDD_15", SingleUsePrefix: "HDD"},
	}

	sel, err := Select(frame, "use", candidates, nil)
	require.NoError(t, err)

	names := sel.Final().Spec.TermNames()
	require.Len(t, names, 1, "exactly one variant may be admitted, got %v", names)
	for _, fit := range sel.Fits {
		assert.LessOrEqual(t, fit.Spec.NumTerms(), 1)
	}
}

func TestSelectSignConstraint(t *testing.T) {
	// y decreases with x, so x only fits with a negative coefficient.
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	y := make([]float64, len(x))
	for i := range y {
		y[i] = 20 - 2*x[i] + float64(i%3-1)/10
	}
	frame := makeFrame(t, []string{"use", "x"}, [][]float64{y, x})

	forbidden := []CandidateTerm{{Name: "x", AllowNegativeCoefficient: false}}
	sel, err := Select(frame, "use", forbidden, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, sel.Final().Spec.NumTerms(), "negative-coefficient trial must be skipped")

	allowed := []CandidateTerm{{Name: "x", AllowNegativeCoefficient: true}}
	sel, err = Select(frame, "use", allowed, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, sel.Final().Spec.TermNames())
	coef, _ := sel.Final().Param("x")
	assert.Negative(t, coef.Coef)
}

func TestSelectSkipsCollinearTrial(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	twice := []float64{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}
	y := make([]float64, len(x))
	for i := range y {
		y[i] = 1 + 2*x[i] + float64(i%3-1)/10
	}
	frame := makeFrame(t, []string{"use", "x", "twice"}, [][]float64{y, x, twice})
	candidates := []CandidateTerm{
		{Name: "x", AllowNegativeCoefficient: true},
		{Name: "twice", AllowNegativeCoefficient: true},
	}

	sel, err := Select(frame, "use", candidates, nil)
	require.NoError(t, err)

	// After x enters, the collinear sibling is a singular trial and is
	// skipped rather than failing the run.
	assert.Equal(t, []string{"x"}, sel.Final().Spec.TermNames())
}

func TestSelectTooFewObservations(t *testing.T) {
	// Two observations, three candidates: every trial lacks degrees of
	// freedom. The failure is a typed error, not a crash.
	frame := makeFrame(t, []string{"use", "a", "b", "c"},
		[][]float64{{1, 2}, {0, 1}, {1, 0}, {1, 1}})
	candidates := []CandidateTerm{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	_, err := Select(frame, "use", candidates, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData) || errors.Is(err, ErrSingularMatrix),
		"unexpected error: %v", err)
}

func TestSelectStopsWhenNothingImproves(t *testing.T) {
	// Pure noise: no candidate should beat the intercept-only baseline.
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	y := []float64{5, -3, 4, -4, 3, -5, 4, -3}
	frame := makeFrame(t, []string{"use", "x"}, [][]float64{y, x})

	sel, err := Select(frame, "use", []CandidateTerm{{Name: "x", AllowNegativeCoefficient: true}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, sel.Final().Spec.NumTerms())
	assert.False(t, math.IsNaN(sel.Final().Intercept().Coef))
}
