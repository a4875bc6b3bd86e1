package mvlr

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/EnergieID/OpenEnergyID/timeframe"
)

// ColumnTemperatureEquivalent is the weather column that unpacks into
// degree-day variants.
const ColumnTemperatureEquivalent = "temperatureEquivalent"

var validate = validator.New(validator.WithRequiredStructEnabled())

// IndependentVariable declares a candidate driver of the dependent
// variable. It must correspond to a column in the data frame.
type IndependentVariable struct {
	// Name of the column. If the name is ColumnTemperatureEquivalent the
	// column is unpacked into degree-day columns according to Variants.
	Name string `json:"name" validate:"required"`

	// Variants of the temperatureEquivalent variable. "HDD_16.5" is
	// heating degree days with a base temperature of 16.5 degrees C,
	// "CDD_0" is cooling degree days with a base temperature of 0.
	Variants []string `json:"variants,omitempty"`

	// AllowNegativeCoefficient reports whether the fitted coefficient may
	// be negative. Defaults to true when nil.
	AllowNegativeCoefficient *bool `json:"allowNegativeCoefficient,omitempty"`
}

func (iv IndependentVariable) allowNegative() bool {
	return iv.AllowNegativeCoefficient == nil || *iv.AllowNegativeCoefficient
}

// ValidationParameters are the acceptance thresholds for a fitted model.
type ValidationParameters struct {
	// RSquared is the minimum acceptable adjusted R-squared.
	RSquared float64 `json:"rsquared" validate:"gte=0,lte=1"`
	// FPValue is the maximum acceptable p-value of the F-statistic.
	FPValue float64 `json:"f_pvalue" validate:"gte=0,lte=1"`
	// PValues is the maximum acceptable p-value of any term's t-statistic.
	PValues float64 `json:"pvalues" validate:"gte=0,lte=1"`
}

// DefaultValidationParameters returns the default acceptance thresholds.
func DefaultValidationParameters() ValidationParameters {
	return ValidationParameters{RSquared: 0.75, FPValue: 0.05, PValues: 0.05}
}

// Input configures a full model search across granularities.
type Input struct {
	DependentVariable    string                `json:"dependentVariable" validate:"required"`
	IndependentVariables []IndependentVariable `json:"independentVariables" validate:"required,min=1,dive"`
	Granularities        []timeframe.Granularity `json:"granularities" validate:"required,min=1"`

	// SingleUsePrefixes lists mutual-exclusion prefixes: of all candidate
	// terms whose name starts with a listed prefix, at most one may enter
	// the model.
	SingleUsePrefixes []string `json:"singleUseExogPrefixes,omitempty"`

	// ValidationParameters defaults to DefaultValidationParameters.
	ValidationParameters *ValidationParameters `json:"validationParameters,omitempty" validate:"omitempty"`

	// PMax is the maximum p-value for a term to survive pruning
	// (default: 0.05).
	PMax float64 `json:"pMax,omitempty" validate:"omitempty,gt=0,lte=1"`

	// Confidence is the two-sided confidence level for reported
	// coefficient intervals (default: 0.95).
	Confidence float64 `json:"confidence,omitempty" validate:"omitempty,gt=0,lt=1"`

	// CrossValidation selects models by leave-one-out error instead of
	// BIC. Only supported for samples of fewer than 15 observations.
	CrossValidation bool `json:"crossValidation,omitempty"`

	// Aggregations overrides the per-column resampling method
	// (default: sum).
	Aggregations map[string]timeframe.Aggregation `json:"aggregations,omitempty"`

	// Logger, when set, traces selection rounds.
	Logger *slog.Logger `json:"-"`
}

func (in *Input) pMax() float64 {
	if in.PMax == 0 {
		return 0.05
	}
	return in.PMax
}

func (in *Input) confidence() float64 {
	if in.Confidence == 0 {
		return 0.95
	}
	return in.Confidence
}

func (in *Input) thresholds() ValidationParameters {
	if in.ValidationParameters == nil {
		return DefaultValidationParameters()
	}
	return *in.ValidationParameters
}

// Validate checks the input against the frame it will analyze. The
// dependent variable and every independent variable (before degree-day
// expansion) must be columns of the frame, and all granularities must be
// supported.
func (in *Input) Validate(frame *timeframe.Frame) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("mvlr: invalid input: %w", err)
	}
	if !frame.HasColumn(in.DependentVariable) {
		return fmt.Errorf("%w: %q", ErrDependentVariableNotFound, in.DependentVariable)
	}
	for _, iv := range in.IndependentVariables {
		if !frame.HasColumn(iv.Name) {
			return fmt.Errorf("mvlr: independent variable %q not found in frame", iv.Name)
		}
		if iv.Name == ColumnTemperatureEquivalent {
			for _, variant := range iv.Variants {
				if _, _, err := parseDegreeDayVariant(variant); err != nil {
					return err
				}
			}
		}
	}
	for _, g := range in.Granularities {
		if !g.Valid() {
			return fmt.Errorf("mvlr: unsupported granularity %q", g)
		}
	}
	return nil
}

// PrepareFrame returns the frame ready for analysis: degree-day variants
// are unpacked into their own columns and the result is restricted to the
// dependent variable plus the candidate columns.
func (in *Input) PrepareFrame(frame *timeframe.Frame) (*timeframe.Frame, error) {
	retain := []string{in.DependentVariable}
	out := frame
	for _, iv := range in.IndependentVariables {
		if iv.Name == ColumnTemperatureEquivalent && len(iv.Variants) > 0 {
			temp, ok := out.Column(iv.Name)
			if !ok {
				return nil, fmt.Errorf("mvlr: independent variable %q not found in frame", iv.Name)
			}
			for _, variant := range iv.Variants {
				prefix, base, err := parseDegreeDayVariant(variant)
				if err != nil {
					return nil, err
				}
				vals := make([]float64, len(temp))
				for i, tv := range temp {
					var v float64
					if prefix == "CDD" {
						v = tv - base
					} else {
						v = base - tv
					}
					if v < 0 {
						v = 0
					}
					vals[i] = v
				}
				out, err = out.WithColumn(variant, vals)
				if err != nil {
					return nil, err
				}
				retain = append(retain, variant)
			}
		} else {
			retain = append(retain, iv.Name)
		}
	}
	return out.Select(retain...)
}

// CandidateTerms derives the ordered candidate pool from the independent
// variables, expanding degree-day variants and assigning each term the
// first matching single-use prefix.
func (in *Input) CandidateTerms() []CandidateTerm {
	var terms []CandidateTerm
	for _, iv := range in.IndependentVariables {
		if iv.Name == ColumnTemperatureEquivalent && len(iv.Variants) > 0 {
			for _, variant := range iv.Variants {
				terms = append(terms, CandidateTerm{
					Name:                     variant,
					AllowNegativeCoefficient: iv.allowNegative(),
					SingleUsePrefix:          in.matchPrefix(variant),
				})
			}
			continue
		}
		terms = append(terms, CandidateTerm{
			Name:                     iv.Name,
			AllowNegativeCoefficient: iv.allowNegative(),
			SingleUsePrefix:          in.matchPrefix(iv.Name),
		})
	}
	return terms
}

func (in *Input) matchPrefix(name string) string {
	for _, p := range in.SingleUsePrefixes {
		if p != "" && strings.HasPrefix(name, p) {
			return p
		}
	}
	return ""
}

// parseDegreeDayVariant splits a variant like "HDD_16.5" into its prefix
// and base temperature.
func parseDegreeDayVariant(variant string) (prefix string, base float64, err error) {
	parts := strings.SplitN(variant, "_", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("mvlr: malformed degree-day variant %q", variant)
	}
	base, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("mvlr: malformed degree-day variant %q: %w", variant, err)
	}
	return parts[0], base, nil
}
