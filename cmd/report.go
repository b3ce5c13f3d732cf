package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/yieldbook"
	"github.com/etnz/yieldbook/date"
	"github.com/etnz/yieldbook/renderer"
	"github.com/google/subcommands"
)

type queryCmd struct {
	on string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "record the net value of a product" }
func (*queryCmd) Usage() string {
	return `query [-on <date>] <product> <net value>

  Records the net value read for a product on a date (today by default), and
  prints the days held, current amount and annualized yield computed from it.
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "0d", "Query date")
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return failure(fmt.Errorf("%w: a product and a net value are required", yieldbook.ErrInvalidInput))
	}
	on, err := parseDate("on", c.on)
	if err != nil {
		return failure(err)
	}
	nav, err := parsePositive("net value", f.Arg(1))
	if err != nil {
		return failure(err)
	}
	return withBook(ctx, func(b *yieldbook.Book) error {
		p, err := b.Products.Lookup(f.Arg(0))
		if err != nil {
			return err
		}
		r, err := b.Query(p.ID, on, nav)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s on %s: %d days held, %s, %s annualized\n",
			p.Name, r.QueryDate, r.DaysHeld, yieldbook.M(r.CurrentAmount, *currency), r.AnnualizedYield)
		return nil
	})
}

type listCmd struct {
	all bool
	on  string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "show the board of products" }
func (*listCmd) Usage() string {
	return `list [-all] [-on <date>]

  Shows the products with their latest query, the lowest annualized yield
  first. Redeemed products are hidden unless -all is set.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Include redeemed products")
	f.StringVar(&c.on, "on", "0d", "Day to count the days held to")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDate("on", c.on)
	if err != nil {
		return failure(err)
	}
	return withBook(ctx, func(b *yieldbook.Book) error {
		printMarkdown(renderer.BoardMarkdown(b.Board(on, c.all), on, *currency))
		return nil
	})
}

type showCmd struct {
	on   string
	from string
	to   string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show a product and its query history" }
func (*showCmd) Usage() string {
	return `show [-on <date>] [-from <date>] [-to <date>] <product>

  Shows the details of a product and the history of its queries, optionally
  restricted to the queries made from and to the given dates.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "0d", "Day to count the days held to")
	f.StringVar(&c.from, "from", "", "Only show the queries made on or after this date")
	f.StringVar(&c.to, "to", "", "Only show the queries made on or before this date")
}

// within returns the range of queries to show.
func (c *showCmd) within() (r date.Range, err error) {
	if c.from != "" {
		if r.From, err = parseDate("from", c.from); err != nil {
			return r, err
		}
	}
	if c.to != "" {
		if r.To, err = parseDate("to", c.to); err != nil {
			return r, err
		}
	}
	return r, nil
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ref, ok := oneProduct(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	on, err := parseDate("on", c.on)
	if err != nil {
		return failure(err)
	}
	within, err := c.within()
	if err != nil {
		return failure(err)
	}
	return withBook(ctx, func(b *yieldbook.Book) error {
		p, err := b.Products.Lookup(ref)
		if err != nil {
			return err
		}
		h, err := b.History(p.ID)
		if err != nil {
			return err
		}
		var md strings.Builder
		md.WriteString(renderer.ProductMarkdown(renderer.NewProduct(p, on, *currency)))
		md.WriteString("\n")
		md.WriteString(renderer.HistoryMarkdown(h.Within(within), *currency))
		printMarkdown(md.String())
		return nil
	})
}

// today is the clock of the commands that default to the current day.
var today = date.Today
