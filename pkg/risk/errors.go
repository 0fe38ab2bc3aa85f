package risk

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContract is returned for contract terms that cannot be priced.
	ErrInvalidContract = errors.New("invalid contract")
	// ErrInvalidBounds is returned when an integration range is empty or inverted.
	ErrInvalidBounds = errors.New("invalid integration bounds")
)

// EmptySeriesError is returned when an estimator receives no maxima.
type EmptySeriesError struct {
	Stage string
}

func (e *EmptySeriesError) Error() string {
	return fmt.Sprintf("%s: maxima series is empty", e.Stage)
}

// FitError is returned when the GEV fit is degenerate or does not converge.
type FitError struct {
	Reason   string
	Samples  int
	Distinct int
	Err      error
}

func (e *FitError) Error() string {
	msg := fmt.Sprintf("gev fit failed (%d samples, %d distinct): %s", e.Samples, e.Distinct, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FitError) Unwrap() error {
	return e.Err
}

// IntegrationError is returned when quadrature cannot reach its tolerance.
// Estimate and Bound carry the best value found and its error estimate.
type IntegrationError struct {
	Lower, Upper float64
	Estimate     float64
	Bound        float64
	Tolerance    float64
	Panels       int
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("quadrature over [%g, %g] did not converge after %d panels: estimate %g, error bound %g exceeds tolerance %g",
		e.Lower, e.Upper, e.Panels, e.Estimate, e.Bound, e.Tolerance)
}
