package date

// Range represents a range of dates, boundaries included. A zero boundary
// leaves that side open.
type Range struct{ From, To Date }

// Contains return true date is included in the range.
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// IsZero returns true for the range of all dates.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// String formats the range as "from..to", an open side is empty.
func (r Range) String() string { return r.From.String() + ".." + r.To.String() }
