package renderer

import (
	"fmt"

	"github.com/etnz/yieldbook"
)

// shortID returns the first characters of an id, enough to reference a product on the command line.
func shortID(id string) string {
	const size = 8
	if len(id) <= size {
		return id
	}
	return id[:size]
}

// optPercent renders an optional percent, "" when unset.
func optPercent(p *yieldbook.Percent) string {
	if p == nil {
		return ""
	}
	return p.String()
}

// shares renders a number of shares with two decimals.
func shares(x float64) string { return fmt.Sprintf("%.2f", x) }
