package yieldbook

import (
	"errors"
	"math"
	"testing"
)

func newTestRecordStore(records []QueryRecord) *RecordStore {
	s := NewRecordStore(records, nil)
	s.newID = sequentialIDs("r")
	return s
}

func TestRecordStoreAdd(t *testing.T) {
	var saved []QueryRecord
	s := NewRecordStore(nil, func(r []QueryRecord) error { saved = r; return nil })
	s.newID = sequentialIDs("r")

	r, err := s.Add("p-1", D("2024-01-01"), D("2024-07-01"), 1.05, 1.0, 10000)
	if err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	want := QueryRecord{
		ID:              "r-1",
		ProductID:       "p-1",
		QueryDate:       D("2024-07-01"),
		CurrentNetValue: 1.05,
		CurrentAmount:   r.CurrentAmount,
		AnnualizedYield: 10.03,
		DaysHeld:        182,
	}
	if r != want {
		t.Errorf("Add() = %+v, want %+v", r, want)
	}
	if math.Abs(r.CurrentAmount-10500) > 1e-9 {
		t.Errorf("Add() current amount = %v, want 10500", r.CurrentAmount)
	}
	if len(saved) != 1 || saved[0] != r {
		t.Errorf("Add() saved %v, want [%v]", saved, r)
	}
}

func TestRecordStoreAddInvalidInput(t *testing.T) {
	s := newTestRecordStore(nil)
	_, err := s.Add("p-1", D("2024-01-01"), D("2024-07-01"), 1.05, 0, 10000)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Add() error = %v, want ErrInvalidInput", err)
	}
	if s.Len() != 0 {
		t.Errorf("Add() appended a record despite the error")
	}
}

func TestRecordStoreRecordsFor(t *testing.T) {
	s := newTestRecordStore([]QueryRecord{
		{ID: "1", ProductID: "a", QueryDate: D("2024-03-01")},
		{ID: "2", ProductID: "b", QueryDate: D("2024-01-01")},
		{ID: "3", ProductID: "a", QueryDate: D("2024-01-01")},
	})
	got := s.RecordsFor("a")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("RecordsFor(a) = %v, want records 1 and 3 in store order", got)
	}
	if got := s.RecordsFor("c"); len(got) != 0 {
		t.Errorf("RecordsFor(c) = %v, want none", got)
	}
}

func TestRecordStoreLatestFor(t *testing.T) {
	tests := []struct {
		name    string
		records []QueryRecord
		want    string // record id, "" for none
	}{
		{
			name: "unordered",
			records: []QueryRecord{
				{ID: "jan", ProductID: "a", QueryDate: D("2024-01-01")},
				{ID: "mar", ProductID: "a", QueryDate: D("2024-03-01")},
				{ID: "feb", ProductID: "a", QueryDate: D("2024-02-01")},
			},
			want: "mar",
		},
		{
			name: "other products are ignored",
			records: []QueryRecord{
				{ID: "jan", ProductID: "a", QueryDate: D("2024-01-01")},
				{ID: "dec", ProductID: "b", QueryDate: D("2024-12-01")},
			},
			want: "jan",
		},
		{
			name: "tie keeps the first",
			records: []QueryRecord{
				{ID: "first", ProductID: "a", QueryDate: D("2024-03-01")},
				{ID: "older", ProductID: "a", QueryDate: D("2024-02-01")},
				{ID: "second", ProductID: "a", QueryDate: D("2024-03-01")},
			},
			want: "first",
		},
		{
			name:    "none",
			records: []QueryRecord{{ID: "x", ProductID: "b", QueryDate: D("2024-01-01")}},
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestRecordStore(tt.records)
			got, ok := s.LatestFor("a")
			if tt.want == "" {
				if ok {
					t.Errorf("LatestFor(a) = %v, want none", got)
				}
				return
			}
			if !ok || got.ID != tt.want {
				t.Errorf("LatestFor(a) = %v (%v), want %q", got.ID, ok, tt.want)
			}
		})
	}
}

func TestRecordStoreDeleteFor(t *testing.T) {
	s := newTestRecordStore([]QueryRecord{
		{ID: "1", ProductID: "a"},
		{ID: "2", ProductID: "b"},
		{ID: "3", ProductID: "a"},
	})
	if err := s.DeleteFor("a"); err != nil {
		t.Fatalf("DeleteFor() unexpected error: %v", err)
	}
	got := s.Records()
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("DeleteFor(a) left %v, want [2]", got)
	}
}

func TestRecordStoreSaveFailure(t *testing.T) {
	initial := []QueryRecord{{ID: "1", ProductID: "a", QueryDate: D("2024-01-01")}}
	s := NewRecordStore(initial, func([]QueryRecord) error { return errors.New("disk full") })

	if _, err := s.Add("a", D("2024-01-01"), D("2024-02-01"), 1.1, 1, 1); err == nil {
		t.Errorf("Add() expected an error")
	}
	if err := s.DeleteFor("a"); err == nil {
		t.Errorf("DeleteFor() expected an error")
	}
	if err := s.ReplaceAll(nil); err == nil {
		t.Errorf("ReplaceAll() expected an error")
	}
	if got := s.Records(); len(got) != 1 || got[0] != initial[0] {
		t.Errorf("Records() = %v, want unchanged", got)
	}
}

func TestRecordDailyEarning(t *testing.T) {
	r := QueryRecord{CurrentAmount: 10500, DaysHeld: 182}
	got, ok := r.DailyEarning(10000)
	if !ok || math.Abs(got-500.0/182) > 1e-9 {
		t.Errorf("DailyEarning() = %v %v, want %v", got, ok, 500.0/182)
	}
	if _, ok := (QueryRecord{CurrentAmount: 10, DaysHeld: 0}).DailyEarning(10); ok {
		t.Errorf("DailyEarning() on the purchase day should not be available")
	}
}
