// Package risk prices fee insurance from a series of windowed fee maxima.
package risk

import (
	"fmt"
	"math"
)

// DefaultMarkup covers administration cost and profit on top of the fair premium.
const DefaultMarkup = 0.15

// Contract describes an insurance policy that pays Payout when the maximum
// fee over the coverage period exceeds Threshold.
type Contract struct {
	Threshold float64
	Payout    float64
	Markup    float64
}

// Validate checks that the contract terms can be priced.
func (c Contract) Validate() error {
	if math.IsNaN(c.Threshold) {
		return fmt.Errorf("%w: threshold is NaN", ErrInvalidContract)
	}
	if c.Payout < 0 || math.IsNaN(c.Payout) || math.IsInf(c.Payout, 0) {
		return fmt.Errorf("%w: payout (%v) must be a non-negative finite amount", ErrInvalidContract, c.Payout)
	}
	if c.Markup < 0 || math.IsNaN(c.Markup) || math.IsInf(c.Markup, 0) {
		return fmt.Errorf("%w: markup (%v) must be non-negative", ErrInvalidContract, c.Markup)
	}
	return nil
}

// Quote is a priced contract.
type Quote struct {
	Contract    Contract
	Probability float64
	Premium     float64
}

// ExceedanceProbability returns the fraction of maxima strictly above threshold.
func ExceedanceProbability(maxima []float64, threshold float64) (float64, error) {
	if len(maxima) == 0 {
		return 0, &EmptySeriesError{Stage: "exceedance probability"}
	}

	exceeded := 0
	for _, m := range maxima {
		if m > threshold {
			exceeded++
		}
	}
	return float64(exceeded) / float64(len(maxima)), nil
}

// Premium returns probability * payout * (1 + markup).
func Premium(probability float64, c Contract) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if probability < 0 || probability > 1 || math.IsNaN(probability) {
		return 0, fmt.Errorf("%w: probability (%v) must be between 0 and 1", ErrInvalidContract, probability)
	}
	return probability * c.Payout * (1 + c.Markup), nil
}

// PriceContract prices c against the empirical distribution of maxima.
func PriceContract(maxima []float64, c Contract) (Quote, error) {
	if err := c.Validate(); err != nil {
		return Quote{}, err
	}
	p, err := ExceedanceProbability(maxima, c.Threshold)
	if err != nil {
		return Quote{}, err
	}
	premium, err := Premium(p, c)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Contract: c, Probability: p, Premium: premium}, nil
}
