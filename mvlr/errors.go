package mvlr

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the regression engine. Callers should test
// with errors.Is; all of them may be wrapped with additional context.
var (
	// ErrInsufficientData is returned when a fit has no residual degrees
	// of freedom (observations <= parameters).
	ErrInsufficientData = errors.New("mvlr: insufficient degrees of freedom")

	// ErrSingularMatrix is returned when the design matrix is perfectly
	// collinear and X'X cannot be inverted.
	ErrSingularMatrix = errors.New("mvlr: singular design matrix")

	// ErrCrossValidationUnsupported is returned when cross-validation is
	// requested for a sample that is too large to refit per observation.
	ErrCrossValidationUnsupported = errors.New("mvlr: cross-validation requires fewer than 15 observations")

	// ErrDependentVariableNotFound is returned when the dependent variable
	// is not a column of the input frame.
	ErrDependentVariableNotFound = errors.New("mvlr: dependent variable not found in frame")
)

// NoValidModelError is returned when no granularity produced a model that
// meets the validation parameters. It carries the best adjusted R-squared
// observed across all attempts.
type NoValidModelError struct {
	BestRSquaredAdj float64
}

func (e *NoValidModelError) Error() string {
	return fmt.Sprintf("mvlr: no valid model found (best adjusted R-squared %.3f)", e.BestRSquaredAdj)
}
