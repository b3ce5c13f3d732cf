package date

import "testing"

func TestRangeContains(t *testing.T) {
	d := MustParse("2024-03-15")
	tests := []struct {
		r    Range
		want bool
	}{
		{Range{}, true},
		{Range{From: d}, true},
		{Range{To: d}, true},
		{Range{From: d.Add(1)}, false},
		{Range{To: d.Add(-1)}, false},
		{Range{From: MustParse("2024-01-01"), To: MustParse("2024-12-31")}, true},
		{Range{From: MustParse("2024-04-01"), To: MustParse("2024-12-31")}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Contains(d); got != tt.want {
			t.Errorf("%v.Contains(%v) = %v, want %v", tt.r, d, got, tt.want)
		}
	}
}

func TestRangeString(t *testing.T) {
	if got := (Range{From: MustParse("2024-01-01")}).String(); got != "2024-01-01.." {
		t.Errorf("String() = %q", got)
	}
	if !(Range{}).IsZero() {
		t.Errorf("IsZero() of the empty range is false")
	}
}
