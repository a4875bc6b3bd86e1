package mvlr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EnergieID/OpenEnergyID/timeframe"
)

func TestInputUnmarshalJSON(t *testing.T) {
	doc := `{
		"dependentVariable": "use",
		"independentVariables": [
			{"name": "temperatureEquivalent", "variants": ["HDD_16.5", "CDD_0"]},
			{"name": "occupancy", "allowNegativeCoefficient": false}
		],
		"granularities": ["P7D", "P1M"],
		"singleUseExogPrefixes": ["HDD", "CDD"],
		"validationParameters": {"rsquared": 0.8, "f_pvalue": 0.1, "pvalues": 0.1},
		"pMax": 0.1,
		"confidence": 0.9,
		"crossValidation": true,
		"aggregations": {"temperatureEquivalent": "mean"}
	}`

	var input Input
	require.NoError(t, json.Unmarshal([]byte(doc), &input))

	assert.Equal(t, "use", input.DependentVariable)
	require.Len(t, input.IndependentVariables, 2)
	assert.Equal(t, []string{"HDD_16.5", "CDD_0"}, input.IndependentVariables[0].Variants)
	assert.True(t, input.IndependentVariables[0].allowNegative())
	assert.False(t, input.IndependentVariables[1].allowNegative())
	assert.Equal(t, []timeframe.Granularity{timeframe.P7D, timeframe.P1M}, input.Granularities)
	assert.Equal(t, []string{"HDD", "CDD"}, input.SingleUsePrefixes)
	assert.Equal(t, 0.8, input.thresholds().RSquared)
	assert.Equal(t, 0.1, input.pMax())
	assert.Equal(t, 0.9, input.confidence())
	assert.True(t, input.CrossValidation)
	assert.Equal(t, timeframe.AggMean, input.Aggregations["temperatureEquivalent"])
}

func TestInputDefaults(t *testing.T) {
	input := &Input{}
	assert.Equal(t, 0.05, input.pMax())
	assert.Equal(t, 0.95, input.confidence())
	assert.Equal(t, DefaultValidationParameters(), input.thresholds())
}

func TestInputValidate(t *testing.T) {
	frame := makeFrame(t, []string{"use", "temperatureEquivalent"},
		[][]float64{{1, 2, 3}, {10, 15, 20}})

	base := func() *Input {
		return &Input{
			DependentVariable: "use",
			IndependentVariables: []IndependentVariable{
				{Name: "temperatureEquivalent", Variants: []string{"HDD_16.5"}},
			},
			Granularities: []timeframe.Granularity{timeframe.P1D},
		}
	}

	require.NoError(t, base().Validate(frame))

	in := base()
	in.DependentVariable = ""
	assert.Error(t, in.Validate(frame), "dependent variable is required")

	in = base()
	in.IndependentVariables = nil
	assert.Error(t, in.Validate(frame), "at least one independent variable is required")

	in = base()
	in.IndependentVariables = []IndependentVariable{{Name: "occupancy"}}
	assert.Error(t, in.Validate(frame), "unknown column must be rejected")

	in = base()
	in.IndependentVariables[0].Variants = []string{"HDD16.5"}
	assert.Error(t, in.Validate(frame), "variant without separator must be rejected")

	in = base()
	in.IndependentVariables[0].Variants = []string{"HDD_warm"}
	assert.Error(t, in.Validate(frame), "variant without numeric base must be rejected")

	in = base()
	in.Granularities = []timeframe.Granularity{"P2W"}
	assert.Error(t, in.Validate(frame), "unsupported granularity must be rejected")
}

func TestInputValidateBounds(t *testing.T) {
	frame := makeFrame(t, []string{"use", "HDD"}, [][]float64{{1, 2}, {3, 4}})
	base := func() *Input {
		return &Input{
			DependentVariable:    "use",
			IndependentVariables: []IndependentVariable{{Name: "HDD"}},
			Granularities:        []timeframe.Granularity{timeframe.P1D},
		}
	}

	in := base()
	in.ValidationParameters = &ValidationParameters{RSquared: 1.5, FPValue: 0.05, PValues: 0.05}
	assert.Error(t, in.Validate(frame), "rsquared above 1 must be rejected")

	in = base()
	in.PMax = 1.5
	assert.Error(t, in.Validate(frame), "pMax above 1 must be rejected")

	in = base()
	in.Confidence = 1
	assert.Error(t, in.Validate(frame), "confidence must be below 1")
}

func TestPrepareFrameUnpacksDegreeDays(t *testing.T) {
	temps := []float64{0, 10, 16.5, 20}
	use := []float64{50, 30, 10, 5}
	frame := makeFrame(t, []string{"use", "temperatureEquivalent"}, [][]float64{use, temps})

	input := &Input{
		DependentVariable: "use",
		IndependentVariables: []IndependentVariable{
			{Name: "temperatureEquivalent", Variants: []string{"HDD_16.5", "CDD_18"}},
		},
		Granularities: []timeframe.Granularity{timeframe.P1D},
	}

	prepared, err := input.PrepareFrame(frame)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"use", "HDD_16.5", "CDD_18"}, prepared.Columns(),
		"the raw temperature column is dropped after unpacking")

	hdd, ok := prepared.Column("HDD_16.5")
	require.True(t, ok)
	assert.Equal(t, []float64{16.5, 6.5, 0, 0}, hdd, "heating degree days clip at zero")

	cdd, ok := prepared.Column("CDD_18")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0, 0, 2}, cdd, "cooling degree days clip at zero")
}

func TestCandidateTermsPrefixes(t *testing.T) {
	f := false
	input := &Input{
		DependentVariable: "use",
		IndependentVariables: []IndependentVariable{
			{Name: "temperatureEquivalent", Variants: []string{"HDD_16.5", "HDD_15", "CDD_0"}},
			{Name: "occupancy", AllowNegativeCoefficient: &f},
		},
		SingleUsePrefixes: []string{"HDD", "CDD"},
	}

	terms := input.CandidateTerms()
	require.Len(t, terms, 4)

	assert.Equal(t, CandidateTerm{Name: "HDD_16.5", AllowNegativeCoefficient: true, SingleUsePrefix: "HDD"}, terms[0])
	assert.Equal(t, CandidateTerm{Name: "HDD_15", AllowNegativeCoefficient: true, SingleUsePrefix: "HDD"}, terms[1])
	assert.Equal(t, CandidateTerm{Name: "CDD_0", AllowNegativeCoefficient: true, SingleUsePrefix: "CDD"}, terms[2])
	assert.Equal(t, CandidateTerm{Name: "occupancy", AllowNegativeCoefficient: false, SingleUsePrefix: ""}, terms[3])
}
