package yieldbook

import (
	"fmt"
	"math"

	"github.com/etnz/yieldbook/date"
	"github.com/shopspring/decimal"
)

// DaysPerYear is the annualization basis.
const DaysPerYear = 365

// Quote is the result of a net value query against a purchase.
type Quote struct {
	DaysHeld        int
	AnnualizedYield Percent
	CurrentAmount   float64
}

// ComputeQuery derives the holding period, the annualized yield and the
// current amount of a position bought on purchaseDate at purchaseNetValue,
// when its net value is currentNetValue on queryDate.
//
// DaysHeld is the raw day count, it can be zero or negative. The annualization
// divides by max(DaysHeld, 1) so that a same-day query yields the raw return
// scaled by 365 instead of dividing by zero. The yield is rounded to two
// decimals.
//
// It returns ErrInvalidInput if purchaseNetValue is not positive or any value
// is not finite.
func ComputeQuery(purchaseDate, queryDate date.Date, currentNetValue, purchaseNetValue, shares float64) (Quote, error) {
	if err := checkFinite(map[string]float64{
		"current net value":  currentNetValue,
		"purchase net value": purchaseNetValue,
		"shares":             shares,
	}); err != nil {
		return Quote{}, err
	}
	if purchaseNetValue <= 0 {
		return Quote{}, fmt.Errorf("%w: purchase net value must be positive, got %v", ErrInvalidInput, purchaseNetValue)
	}

	days := date.DaysBetween(purchaseDate, queryDate)
	yield := (currentNetValue - purchaseNetValue) / purchaseNetValue * (DaysPerYear / float64(max(days, 1))) * 100

	return Quote{
		DaysHeld:        days,
		AnnualizedYield: Percent(round2(yield)),
		CurrentAmount:   currentNetValue * shares,
	}, nil
}

// SharesFor returns the number of shares bought for amount at netValue.
func SharesFor(amount, netValue float64) (float64, error) {
	if err := checkFinite(map[string]float64{
		"purchase amount":    amount,
		"purchase net value": netValue,
	}); err != nil {
		return 0, err
	}
	if netValue <= 0 {
		return 0, fmt.Errorf("%w: purchase net value must be positive, got %v", ErrInvalidInput, netValue)
	}
	return amount / netValue, nil
}

// round2 rounds x to two decimals, half away from zero.
func round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

func checkFinite(values map[string]float64) error {
	for name, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidInput, name, v)
		}
	}
	return nil
}
