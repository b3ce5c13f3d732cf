package yieldbook

import (
	"errors"
	"testing"

	"github.com/etnz/yieldbook/date"
)

func newTestProductStore(save func([]Product) error) *ProductStore {
	s := NewProductStore(nil, save)
	s.newID = sequentialIDs("p")
	s.today = fixedDay("2024-08-15")
	return s
}

func TestProductStoreAdd(t *testing.T) {
	var saved []Product
	s := newTestProductStore(func(p []Product) error { saved = p; return nil })

	data := newTestProduct("Fund A", "2024-01-01", 1.0, 10000)
	p, err := s.Add(data)
	if err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	if p.ID != "p-1" {
		t.Errorf("Add() id = %q, want %q", p.ID, "p-1")
	}
	if p.Redeemed || p.RedemptionDate != nil {
		t.Errorf("Add() new product is redeemed: %v %v", p.Redeemed, p.RedemptionDate)
	}
	if p.Shares != 10000 {
		t.Errorf("Add() shares = %v, want 10000", p.Shares)
	}
	if len(saved) != 1 || saved[0] != p {
		t.Errorf("Add() saved %v, want [%v]", saved, p)
	}

	q, _ := s.Add(newTestProduct("Fund B", "2024-02-01", 1.2, 600))
	if q.ID == p.ID {
		t.Errorf("Add() reused id %q", q.ID)
	}
	if got := s.Products(); len(got) != 2 || got[0].ID != p.ID || got[1].ID != q.ID {
		t.Errorf("Products() = %v, want insertion order", got)
	}
}

func TestProductStoreUpdate(t *testing.T) {
	s := newTestProductStore(nil)
	p, _ := s.Add(newTestProduct("Fund A", "2024-01-01", 1.0, 10000))

	monthly := Percent(3.2)
	err := s.Update(p.ID,
		SetName("Fund A+"),
		SetMonthlyYield(&monthly),
		SetRiskLevel(R2),
		SetNotes("rolled over"),
		// a change trying to alter the identity and shares is ignored for those.
		func(p *Product) { p.ID = "other"; p.Shares = 1 },
	)
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	got, ok := s.Find(p.ID)
	if !ok {
		t.Fatalf("Find(%q) not found after update", p.ID)
	}
	if got.Name != "Fund A+" || got.RiskLevel != R2 || got.Notes != "rolled over" {
		t.Errorf("Update() got %+v", got)
	}
	if got.MonthlyYieldAtPurchase == nil || *got.MonthlyYieldAtPurchase != 3.2 {
		t.Errorf("Update() monthly yield = %v, want 3.2", got.MonthlyYieldAtPurchase)
	}
	if got.InceptionYieldAtPurchase != nil {
		t.Errorf("Update() inception yield = %v, want unset", got.InceptionYieldAtPurchase)
	}
	if got.Shares != 10000 {
		t.Errorf("Update() changed shares to %v", got.Shares)
	}

	if err := s.Update(p.ID, SetMonthlyYield(nil), SetNotes("")); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	got, _ = s.Find(p.ID)
	if got.MonthlyYieldAtPurchase != nil || got.Notes != "" {
		t.Errorf("Update() did not clear optional fields: %+v", got)
	}
}

func TestProductStoreNotFound(t *testing.T) {
	saves := 0
	s := newTestProductStore(func([]Product) error { saves++; return nil })
	s.Add(newTestProduct("Fund A", "2024-01-01", 1.0, 10000))
	saves = 0

	if err := s.Update("missing", SetName("x")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if err := s.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
	if err := s.ToggleRedeemed("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleRedeemed() error = %v, want ErrNotFound", err)
	}
	if saves != 0 {
		t.Errorf("failed operations saved %d times", saves)
	}
}

func TestProductStoreToggleRedeemed(t *testing.T) {
	s := newTestProductStore(nil)
	p, _ := s.Add(newTestProduct("Fund A", "2024-01-01", 1.0, 10000))

	if err := s.ToggleRedeemed(p.ID); err != nil {
		t.Fatalf("ToggleRedeemed() unexpected error: %v", err)
	}
	got, _ := s.Find(p.ID)
	if !got.Redeemed || got.RedemptionDate == nil || *got.RedemptionDate != D("2024-08-15") {
		t.Errorf("ToggleRedeemed() = %v %v, want redeemed on 2024-08-15", got.Redeemed, got.RedemptionDate)
	}

	// toggling twice restores the original state.
	if err := s.ToggleRedeemed(p.ID); err != nil {
		t.Fatalf("ToggleRedeemed() unexpected error: %v", err)
	}
	got, _ = s.Find(p.ID)
	if got != p {
		t.Errorf("ToggleRedeemed() twice = %+v, want %+v", got, p)
	}
}

func TestProductStoreDelete(t *testing.T) {
	s := newTestProductStore(nil)
	a, _ := s.Add(newTestProduct("Fund A", "2024-01-01", 1.0, 10000))
	b, _ := s.Add(newTestProduct("Fund B", "2024-01-01", 1.0, 10000))
	c, _ := s.Add(newTestProduct("Fund C", "2024-01-01", 1.0, 10000))

	if err := s.Delete(b.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	got := s.Products()
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Errorf("Delete() left %v, want [%s %s]", got, a.ID, c.ID)
	}
}

// TestProductStoreSaveFailure checks that a failing save leaves the store untouched.
func TestProductStoreSaveFailure(t *testing.T) {
	fail := false
	s := newTestProductStore(func([]Product) error {
		if fail {
			return errors.New("disk full")
		}
		return nil
	})
	p, _ := s.Add(newTestProduct("Fund A", "2024-01-01", 1.0, 10000))
	fail = true

	if _, err := s.Add(newTestProduct("Fund B", "2024-01-01", 1.0, 10000)); err == nil {
		t.Errorf("Add() expected an error")
	}
	if err := s.Update(p.ID, SetName("renamed")); err == nil {
		t.Errorf("Update() expected an error")
	}
	if err := s.ToggleRedeemed(p.ID); err == nil {
		t.Errorf("ToggleRedeemed() expected an error")
	}
	if err := s.Delete(p.ID); err == nil {
		t.Errorf("Delete() expected an error")
	}
	if got := s.Products(); len(got) != 1 || got[0] != p {
		t.Errorf("Products() = %v, want unchanged [%v]", got, p)
	}
}

func TestProductStoreLookup(t *testing.T) {
	s := NewProductStore([]Product{
		{ID: "7f3a-1111", ProductData: ProductData{Name: "A", ProductCode: "WM001"}},
		{ID: "7f3b-2222", ProductData: ProductData{Name: "B", ProductCode: "WM002"}},
		{ID: "9c00-3333", ProductData: ProductData{Name: "C", ProductCode: "WM002"}},
	}, nil)

	tests := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{"7f3a-1111", "A", false},
		{"7f3a", "A", false},
		{"9c", "C", false},
		{"7f3", "", true}, // ambiguous prefix
		{"WM001", "A", false},
		{"WM002", "", true}, // ambiguous code
		{"nope", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			p, err := s.Lookup(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if !tt.wantErr && p.Name != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.ref, p.Name, tt.want)
			}
		})
	}
}

func TestDaysHeld(t *testing.T) {
	redeemedOn := D("2024-03-01")
	tests := []struct {
		name       string
		redeemed   bool
		redemption *date.Date
		want       int
	}{
		{"held", false, nil, 227},
		{"redeemed", true, &redeemedOn, 60},
		{"redeemed without date", true, nil, 227},
		{"date without redemption", false, &redeemedOn, 227},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysHeld(D("2024-01-01"), tt.redeemed, tt.redemption, D("2024-08-15"))
			if got != tt.want {
				t.Errorf("DaysHeld() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseRiskLevel(t *testing.T) {
	for _, in := range []string{"", "R1", "r3", " R5 "} {
		if _, err := ParseRiskLevel(in); err != nil {
			t.Errorf("ParseRiskLevel(%q) unexpected error: %v", in, err)
		}
	}
	for _, in := range []string{"R0", "R6", "high"} {
		if _, err := ParseRiskLevel(in); err == nil {
			t.Errorf("ParseRiskLevel(%q) expected an error", in)
		}
	}
}
