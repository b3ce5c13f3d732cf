package yieldbook

import "github.com/etnz/yieldbook/date"

// QueryRecord is a net value observed for a product on a given day.
//
// The derived fields are computed once, when the record is created, and are
// never recomputed. ProductID is a lookup key: a record may outlive its
// product.
type QueryRecord struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"productId"`
	QueryDate       date.Date `json:"queryDate"`
	CurrentNetValue float64   `json:"currentNetValue"`
	CurrentAmount   float64   `json:"currentAmount"`
	AnnualizedYield Percent   `json:"annualizedYield"`
	DaysHeld        int       `json:"daysHeld"`
}

// DailyEarning returns the average amount earned per day held, given the
// purchase amount of the product. ok is false for a record made on the
// purchase day, or before it.
func (r QueryRecord) DailyEarning(purchaseAmount float64) (earning float64, ok bool) {
	if r.DaysHeld <= 0 {
		return 0, false
	}
	return (r.CurrentAmount - purchaseAmount) / float64(r.DaysHeld), true
}
