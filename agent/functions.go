package agent

import (
	"context"
	"fmt"

	"github.com/etnz/yieldbook"
	"github.com/etnz/yieldbook/date"
	"github.com/etnz/yieldbook/docs"
	"github.com/etnz/yieldbook/renderer"
	"google.golang.org/genai"
)

// BookFunctions returns the functions reading book, amounts are shown in currency.
func BookFunctions(book *yieldbook.Book, currency string) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Board",
				Description: `Board lists the products with their latest annualized yield, the lowest first, and their daily earning.`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date": {
							Type:        genai.TypeString,
							Description: "The day to compute the days held on, as YYYY-MM-DD. Today is the default.",
						},
						"all": {
							Type:        genai.TypeBoolean,
							Description: "Include the redeemed products.",
						},
					},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table of the products."},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				on, err := parseDate(args)
				if err != nil {
					return "", err
				}
				all, _ := args["all"].(bool)
				return renderer.BoardMarkdown(book.Board(on, all), on, currency), nil
			},
		},
		&Func{
			Decl: productDeclaration("Product", "Product details a product: purchase terms, yields advertised at purchase, risk level and notes."),
			Func: func(_ context.Context, args map[string]any) (string, error) {
				p, err := lookup(book, args)
				if err != nil {
					return "", err
				}
				return renderer.ProductMarkdown(renderer.NewProduct(p, date.Today(), currency)), nil
			},
		},
		&Func{
			Decl: productDeclaration("History", "History lists the net value queries of a product with their annualized yield and daily earning."),
			Func: func(_ context.Context, args map[string]any) (string, error) {
				p, err := lookup(book, args)
				if err != nil {
					return "", err
				}
				h, err := book.History(p.ID)
				if err != nil {
					return "", err
				}
				return renderer.HistoryMarkdown(h, currency), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Documentation",
				Description: `Documentation explains how days held, annualized yields and daily earnings are computed.`,
				Response:    &genai.Schema{Type: genai.TypeString, Description: "The documentation in markdown."},
			},
			Func: func(context.Context, map[string]any) (string, error) {
				return docs.GetTopic("yield")
			},
		},
	}
}

func productDeclaration(name, description string) *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        name,
		Description: description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"product": {
					Type:        genai.TypeString,
					Description: "The product id, a unique prefix of it, or its product code.",
				},
			},
			Required: []string{"product"},
		},
		Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown report."},
	}
}

func lookup(book *yieldbook.Book, args map[string]any) (yieldbook.Product, error) {
	ref, ok := args["product"].(string)
	if !ok {
		return yieldbook.Product{}, fmt.Errorf("argument 'product' is not a string as expected but %T", args["product"])
	}
	return book.Products.Lookup(ref)
}

func parseDate(args map[string]any) (date.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return date.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return date.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}
	d, err := date.Parse(sdate)
	if err != nil {
		return date.Today(), fmt.Errorf("argument 'date' must be a valid YYYY-MM-DD date got %q", sdate)
	}
	return d, nil
}
