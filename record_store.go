package yieldbook

import (
	"fmt"
	"slices"

	"github.com/etnz/yieldbook/date"
	"github.com/google/uuid"
)

// RecordStore owns the append-only log of query records.
//
// Like [ProductStore], it saves every mutation through save before adopting it.
type RecordStore struct {
	records []QueryRecord
	save    func([]QueryRecord) error
	newID   func() string
}

// NewRecordStore returns a store initialized with records (not copied),
// saving through save. A nil save keeps the store in memory only.
func NewRecordStore(records []QueryRecord, save func([]QueryRecord) error) *RecordStore {
	if save == nil {
		save = func([]QueryRecord) error { return nil }
	}
	return &RecordStore{
		records: records,
		save:    save,
		newID:   uuid.NewString,
	}
}

// Records returns a copy of all records in store order.
func (s *RecordStore) Records() []QueryRecord { return slices.Clone(s.records) }

// Len returns the number of records.
func (s *RecordStore) Len() int { return len(s.records) }

func (s *RecordStore) commit(next []QueryRecord) error {
	if err := s.save(next); err != nil {
		return fmt.Errorf("cannot save query records: %w", err)
	}
	s.records = next
	return nil
}

// Add computes a quote for the query and appends it as a new record.
//
// The purchase terms are passed by the caller, the store does not look the
// product up. Errors from [ComputeQuery] are returned wrapped, nothing is
// appended.
func (s *RecordStore) Add(productID string, purchaseDate, queryDate date.Date, currentNetValue, purchaseNetValue, shares float64) (QueryRecord, error) {
	q, err := ComputeQuery(purchaseDate, queryDate, currentNetValue, purchaseNetValue, shares)
	if err != nil {
		return QueryRecord{}, fmt.Errorf("cannot record query for %q: %w", productID, err)
	}
	r := QueryRecord{
		ID:              s.newID(),
		ProductID:       productID,
		QueryDate:       queryDate,
		CurrentNetValue: currentNetValue,
		CurrentAmount:   q.CurrentAmount,
		AnnualizedYield: q.AnnualizedYield,
		DaysHeld:        q.DaysHeld,
	}
	next := append(slices.Clone(s.records), r)
	if err := s.commit(next); err != nil {
		return QueryRecord{}, err
	}
	return r, nil
}

// AddFor is Add with the purchase terms taken from p.
func (s *RecordStore) AddFor(p Product, queryDate date.Date, currentNetValue float64) (QueryRecord, error) {
	return s.Add(p.ID, p.PurchaseDate, queryDate, currentNetValue, p.PurchaseNetValue, p.Shares)
}

// RecordsFor returns the records of a product in store order.
func (s *RecordStore) RecordsFor(productID string) []QueryRecord {
	var list []QueryRecord
	for _, r := range s.records {
		if r.ProductID == productID {
			list = append(list, r)
		}
	}
	return list
}

// LatestFor returns the record of a product with the latest query date.
// Among records on the same date, the first one in store order wins.
func (s *RecordStore) LatestFor(productID string) (latest QueryRecord, ok bool) {
	for _, r := range s.records {
		if r.ProductID != productID {
			continue
		}
		if !ok || r.QueryDate.After(latest.QueryDate) {
			latest, ok = r, true
		}
	}
	return latest, ok
}

// DeleteFor removes all the records of a product.
func (s *RecordStore) DeleteFor(productID string) error {
	next := slices.DeleteFunc(slices.Clone(s.records), func(r QueryRecord) bool { return r.ProductID == productID })
	return s.commit(next)
}

// ReplaceAll replaces the whole log, as an import does.
func (s *RecordStore) ReplaceAll(records []QueryRecord) error {
	return s.commit(slices.Clone(records))
}
