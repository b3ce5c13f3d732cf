package yieldbook

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/etnz/yieldbook/date"
)

// Position is a product as shown on the board: the product, its latest
// query and the figures derived from them on a given day.
type Position struct {
	Product  Product
	Latest   *QueryRecord // nil if the product was never queried
	DaysHeld int          // as of the board day, see [Product.DaysHeld]
}

// DailyEarning returns the average amount earned per day held, from the
// latest query. ok is false without a query or without a full day held.
func (p Position) DailyEarning() (earning float64, ok bool) {
	if p.Latest == nil || p.DaysHeld <= 0 {
		return 0, false
	}
	return (p.Latest.CurrentAmount - p.Product.PurchaseAmount) / float64(p.DaysHeld), true
}

// Board returns the positions on 'today', sorted by the annualized yield of
// their latest query, lowest first. Positions never queried come last, in
// insertion order. Redeemed products are skipped unless all is set.
func (b *Book) Board(today date.Date, all bool) []Position {
	var positions []Position
	for _, p := range b.Products.Products() {
		if p.Redeemed && !all {
			continue
		}
		pos := Position{Product: p, DaysHeld: p.DaysHeld(today)}
		if latest, ok := b.Records.LatestFor(p.ID); ok {
			pos.Latest = &latest
		}
		positions = append(positions, pos)
	}
	slices.SortStableFunc(positions, func(a, b Position) int {
		switch {
		case a.Latest == nil && b.Latest == nil:
			return 0
		case a.Latest == nil:
			return 1
		case b.Latest == nil:
			return -1
		}
		return cmp.Compare(a.Latest.AnnualizedYield, b.Latest.AnnualizedYield)
	})
	return positions
}

// History is the query history of a product.
type History struct {
	Product Product
	Records []QueryRecord // in store order
	Latest  *QueryRecord
}

// History returns the query history of a product.
func (b *Book) History(id string) (History, error) {
	p, ok := b.Products.Find(id)
	if !ok {
		return History{}, fmt.Errorf("no history for %q: %w", id, ErrNotFound)
	}
	h := History{Product: p, Records: b.Records.RecordsFor(id)}
	if latest, ok := b.Records.LatestFor(id); ok {
		h.Latest = &latest
	}
	return h, nil
}

// Within returns the history restricted to the records queried in r. Latest
// is still the latest record of the product.
func (h History) Within(r date.Range) History {
	if r.IsZero() {
		return h
	}
	var records []QueryRecord
	for _, rec := range h.Records {
		if r.Contains(rec.QueryDate) {
			records = append(records, rec)
		}
	}
	h.Records = records
	return h
}

// Outperformance returns how much the latest annualized yield exceeds the
// monthly annualized yield advertised at purchase. ok is false if either is
// unknown.
func (h History) Outperformance() (diff Percent, ok bool) {
	if h.Latest == nil || h.Product.MonthlyYieldAtPurchase == nil {
		return 0, false
	}
	return h.Latest.AnnualizedYield - *h.Product.MonthlyYieldAtPurchase, true
}
