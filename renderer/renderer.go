package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"text/template"

	"github.com/etnz/yieldbook"
	"github.com/etnz/yieldbook/date"
	md "github.com/nao1215/markdown"
)

//go:embed *.md
var templates embed.FS

// BoardMarkdown renders the positions of a board as a markdown table.
func BoardMarkdown(positions []yieldbook.Position, today date.Date, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Products on %s", today))
	if len(positions) == 0 {
		doc.PlainText("No products.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"ID", "Product", "Code", "Purchased", "Amount", "Days", "Current", "Yield", "Daily"},
		Rows:   [][]string{},
	}
	for _, pos := range positions {
		p := pos.Product
		name := p.Name
		if p.Redeemed {
			name += " (redeemed)"
		}
		current, yield, daily := "", "", ""
		if pos.Latest != nil {
			current = yieldbook.M(pos.Latest.CurrentAmount, currency).String()
			yield = pos.Latest.AnnualizedYield.String()
		}
		if d, ok := pos.DailyEarning(); ok {
			daily = yieldbook.M(d, currency).SignedString()
		}
		table.Rows = append(table.Rows, []string{
			shortID(p.ID),
			name,
			p.ProductCode,
			p.PurchaseDate.String(),
			yieldbook.M(p.PurchaseAmount, currency).String(),
			strconv.Itoa(pos.DaysHeld),
			current,
			yield,
			daily,
		})
	}
	doc.Table(table)
	return doc.String()
}

// HistoryMarkdown renders the query history of a product.
func HistoryMarkdown(h yieldbook.History, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("History for %s", h.Product.Name))
	if len(h.Records) == 0 {
		doc.PlainText("No queries.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Net Value", "Days", "Amount", "Yield", "Daily"},
		Rows:   [][]string{},
	}
	for _, r := range h.Records {
		daily := ""
		if d, ok := r.DailyEarning(h.Product.PurchaseAmount); ok {
			daily = yieldbook.M(d, currency).SignedString()
		}
		table.Rows = append(table.Rows, []string{
			r.QueryDate.String(),
			fmt.Sprintf("%.4f", r.CurrentNetValue),
			strconv.Itoa(r.DaysHeld),
			yieldbook.M(r.CurrentAmount, currency).String(),
			r.AnnualizedYield.String(),
			daily,
		})
	}
	doc.Table(table)

	if diff, ok := h.Outperformance(); ok {
		doc.PlainText(fmt.Sprintf("Latest yield vs monthly yield at purchase: %s", diff.SignedString()))
	}
	return doc.String()
}

// Product is the view of a product detail.
type Product struct {
	ID             string
	Name           string
	Code           string
	PurchaseDate   date.Date
	NetValue       string
	Amount         yieldbook.Money
	Shares         string
	DaysHeld       int
	Status         string
	MonthlyYield   string
	InceptionYield string
	Risk           string
	Notes          string
}

// NewProduct builds the detail view of p as seen on 'today'.
func NewProduct(p yieldbook.Product, today date.Date, currency string) *Product {
	v := &Product{
		ID:             p.ID,
		Name:           p.Name,
		Code:           p.ProductCode,
		PurchaseDate:   p.PurchaseDate,
		NetValue:       fmt.Sprintf("%.4f", p.PurchaseNetValue),
		Amount:         yieldbook.M(p.PurchaseAmount, currency),
		Shares:         shares(p.Shares),
		DaysHeld:       p.DaysHeld(today),
		Status:         "held",
		MonthlyYield:   optPercent(p.MonthlyYieldAtPurchase),
		InceptionYield: optPercent(p.InceptionYieldAtPurchase),
		Risk:           p.RiskLevel.Description(),
		Notes:          p.Notes,
	}
	if p.Redeemed {
		v.Status = "redeemed"
		if p.RedemptionDate != nil {
			v.Status += " on " + p.RedemptionDate.String()
		}
	}
	return v
}

// ProductMarkdown renders the detail of a product.
func ProductMarkdown(p *Product) string {
	partials := map[string]string{
		"product_yields": "product_yields.md",
	}
	return renderTemplate("product", "product.md", partials, p)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
