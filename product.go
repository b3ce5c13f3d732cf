package yieldbook

import (
	"fmt"
	"strings"

	"github.com/etnz/yieldbook/date"
)

// RiskLevel is the risk rating of a product, as published by its issuer.
type RiskLevel string

const (
	RiskUnset RiskLevel = ""
	R1        RiskLevel = "R1" // low
	R2        RiskLevel = "R2" // medium-low
	R3        RiskLevel = "R3" // medium
	R4        RiskLevel = "R4" // medium-high
	R5        RiskLevel = "R5" // high
)

// RiskLevels lists the valid risk levels, unset first.
var RiskLevels = []RiskLevel{RiskUnset, R1, R2, R3, R4, R5}

// ParseRiskLevel parses a risk level, case insensitive. The empty string is RiskUnset.
func ParseRiskLevel(s string) (RiskLevel, error) {
	r := RiskLevel(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range RiskLevels {
		if v == r {
			return r, nil
		}
	}
	return RiskUnset, fmt.Errorf("invalid risk level %q, want one of R1, R2, R3, R4, R5 or empty", s)
}

// Description returns a human label for the risk level.
func (r RiskLevel) Description() string {
	switch r {
	case R1:
		return "R1 - low risk"
	case R2:
		return "R2 - medium-low risk"
	case R3:
		return "R3 - medium risk"
	case R4:
		return "R4 - medium-high risk"
	case R5:
		return "R5 - high risk"
	default:
		return ""
	}
}

// ProductData holds everything about a purchased position but its identity
// and lifecycle.
type ProductData struct {
	Name                     string    `json:"name"`
	ProductCode              string    `json:"productCode"`
	PurchaseDate             date.Date `json:"purchaseDate"`
	PurchaseNetValue         float64   `json:"purchaseNetValue"`
	PurchaseAmount           float64   `json:"purchaseAmount"`
	Shares                   float64   `json:"shares"`
	MonthlyYieldAtPurchase   *Percent  `json:"monthlyYieldAtPurchase,omitempty"`
	InceptionYieldAtPurchase *Percent  `json:"inceptionYieldAtPurchase,omitempty"`
	RiskLevel                RiskLevel `json:"riskLevel"`
	Notes                    string    `json:"notes,omitempty"`
}

// NewProductData returns the data of a new purchase, computing its shares.
func NewProductData(name, code string, on date.Date, netValue, amount float64) (ProductData, error) {
	shares, err := SharesFor(amount, netValue)
	if err != nil {
		return ProductData{}, err
	}
	return ProductData{
		Name:             name,
		ProductCode:      code,
		PurchaseDate:     on,
		PurchaseNetValue: netValue,
		PurchaseAmount:   amount,
		Shares:           shares,
	}, nil
}

// Product is a purchased position.
//
// Shares is fixed at creation, and RedemptionDate is set if and only if the
// product is redeemed.
type Product struct {
	ID string `json:"id"`
	ProductData
	Redeemed       bool       `json:"redeemed"`
	RedemptionDate *date.Date `json:"redemptionDate,omitempty"`
}

// DaysHeld returns the holding period of the product as seen on 'today'.
func (p Product) DaysHeld(today date.Date) int {
	return DaysHeld(p.PurchaseDate, p.Redeemed, p.RedemptionDate, today)
}

// DaysHeld returns the number of days from the purchase to the redemption
// date if redeemed with a known date, or to 'today' otherwise.
func DaysHeld(purchase date.Date, redeemed bool, redemption *date.Date, today date.Date) int {
	end := today
	if redeemed && redemption != nil && !redemption.IsZero() {
		end = *redemption
	}
	return date.DaysBetween(purchase, end)
}

// ProductChange is a change to apply to a product, see [ProductStore.Update].
type ProductChange func(*Product)

// SetName changes the product display name.
func SetName(name string) ProductChange { return func(p *Product) { p.Name = name } }

// SetProductCode changes the product code.
func SetProductCode(code string) ProductChange { return func(p *Product) { p.ProductCode = code } }

// SetMonthlyYield changes the monthly annualized yield at purchase, nil clears it.
func SetMonthlyYield(y *Percent) ProductChange {
	return func(p *Product) { p.MonthlyYieldAtPurchase = y }
}

// SetInceptionYield changes the annualized yield since inception at purchase, nil clears it.
func SetInceptionYield(y *Percent) ProductChange {
	return func(p *Product) { p.InceptionYieldAtPurchase = y }
}

// SetRiskLevel changes the product risk level.
func SetRiskLevel(r RiskLevel) ProductChange { return func(p *Product) { p.RiskLevel = r } }

// SetNotes changes the free text notes, "" clears them.
func SetNotes(notes string) ProductChange { return func(p *Product) { p.Notes = notes } }
