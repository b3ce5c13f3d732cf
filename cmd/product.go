package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/yieldbook"
	"github.com/etnz/yieldbook/date"
	"github.com/google/subcommands"
)

// parseDate parses the date given for the named flag.
func parseDate(name, s string) (date.Date, error) {
	d, err := date.Parse(s)
	if err != nil {
		return date.Date{}, fmt.Errorf("%w: -%s: %v", yieldbook.ErrInvalidInput, name, err)
	}
	return d, nil
}

// oneProduct returns the single product reference in the arguments.
func oneProduct(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one product (id, id prefix or product code) is required.")
		return "", false
	}
	return f.Arg(0), true
}

type addCmd struct {
	name      string
	code      string
	on        string
	nav       string
	amount    string
	monthly   string
	inception string
	risk      string
	notes     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a purchased product" }
func (*addCmd) Usage() string {
	return `add -name <name> -nav <net value> -amount <amount> [-on <date>] [-code <code>] [-monthly <%>] [-inception <%>] [-risk <R1..R5>] [-notes <text>]

  Adds a product bought on a date (today by default) for an amount at a net
  value per share. Its shares are computed once: amount / net value.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Product name (required)")
	f.StringVar(&c.code, "code", "", "Product code")
	f.StringVar(&c.on, "on", "0d", "Purchase date")
	f.StringVar(&c.nav, "nav", "", "Net value per share at purchase (required)")
	f.StringVar(&c.amount, "amount", "", "Amount paid (required)")
	f.StringVar(&c.monthly, "monthly", "", "Monthly annualized yield at purchase, in percent")
	f.StringVar(&c.inception, "inception", "", "Annualized yield since inception at purchase, in percent")
	f.StringVar(&c.risk, "risk", "", "Risk level: R1 to R5")
	f.StringVar(&c.notes, "notes", "", "Free text notes")
}

// data validates the flags into the product data.
func (c *addCmd) data() (yieldbook.ProductData, error) {
	var data yieldbook.ProductData
	name, err := parseName(c.name)
	if err != nil {
		return data, err
	}
	on, err := parseDate("on", c.on)
	if err != nil {
		return data, err
	}
	nav, err := parsePositive("net value", c.nav)
	if err != nil {
		return data, err
	}
	amount, err := parsePositive("amount", c.amount)
	if err != nil {
		return data, err
	}
	monthly, err := parsePercent("monthly yield", c.monthly)
	if err != nil {
		return data, err
	}
	inception, err := parsePercent("inception yield", c.inception)
	if err != nil {
		return data, err
	}
	risk, err := parseRisk(c.risk)
	if err != nil {
		return data, err
	}

	data, err = yieldbook.NewProductData(name, c.code, on, nav, amount)
	if err != nil {
		return data, err
	}
	data.MonthlyYieldAtPurchase = monthly
	data.InceptionYieldAtPurchase = inception
	data.RiskLevel = risk
	data.Notes = c.notes
	return data, nil
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	data, err := c.data()
	if err != nil {
		return failure(err)
	}
	return withBook(ctx, func(b *yieldbook.Book) error {
		p, err := b.Products.Add(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Added %s %q: %.2f shares\n", p.ID, p.Name, p.Shares)
		return nil
	})
}

type editCmd struct {
	addCmd
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a product" }
func (*editCmd) Usage() string {
	return `edit [-name <name>] [-code <code>] [-monthly <%>] [-inception <%>] [-risk <R1..R5>] [-notes <text>] <product>

  Changes the given fields of a product, an empty value clears an optional
  field. The purchase terms and the shares cannot be changed.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Product name")
	f.StringVar(&c.code, "code", "", "Product code")
	f.StringVar(&c.monthly, "monthly", "", "Monthly annualized yield at purchase, in percent")
	f.StringVar(&c.inception, "inception", "", "Annualized yield since inception at purchase, in percent")
	f.StringVar(&c.risk, "risk", "", "Risk level: R1 to R5")
	f.StringVar(&c.notes, "notes", "", "Free text notes")
}

// changes returns the changes for the flags explicitly set.
func (c *editCmd) changes(f *flag.FlagSet) ([]yieldbook.ProductChange, error) {
	var changes []yieldbook.ProductChange
	var err error
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "name":
			var name string
			if name, err = parseName(c.name); err == nil {
				changes = append(changes, yieldbook.SetName(name))
			}
		case "code":
			changes = append(changes, yieldbook.SetProductCode(c.code))
		case "monthly":
			var p *yieldbook.Percent
			if p, err = parsePercent("monthly yield", c.monthly); err == nil {
				changes = append(changes, yieldbook.SetMonthlyYield(p))
			}
		case "inception":
			var p *yieldbook.Percent
			if p, err = parsePercent("inception yield", c.inception); err == nil {
				changes = append(changes, yieldbook.SetInceptionYield(p))
			}
		case "risk":
			var r yieldbook.RiskLevel
			if r, err = parseRisk(c.risk); err == nil {
				changes = append(changes, yieldbook.SetRiskLevel(r))
			}
		case "notes":
			changes = append(changes, yieldbook.SetNotes(c.notes))
		}
	})
	return changes, err
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ref, ok := oneProduct(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	changes, err := c.changes(f)
	if err != nil {
		return failure(err)
	}
	if len(changes) == 0 {
		fmt.Fprintln(os.Stderr, "Error: nothing to change.")
		return subcommands.ExitUsageError
	}
	return withBook(ctx, func(b *yieldbook.Book) error {
		p, err := b.Products.Lookup(ref)
		if err != nil {
			return err
		}
		if err := b.Products.Update(p.ID, changes...); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Updated %s\n", p.ID)
		return nil
	})
}

type rmCmd struct {
	cascade bool
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a product" }
func (*rmCmd) Usage() string {
	return `rm [-cascade] <product>

  Deletes a product. Its query records are kept unless -cascade is set.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.cascade, "cascade", false, "Also delete the query records of the product")
}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ref, ok := oneProduct(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	return withBook(ctx, func(b *yieldbook.Book) error {
		p, err := b.Products.Lookup(ref)
		if err != nil {
			return err
		}
		if err := b.DeleteProduct(p.ID, c.cascade); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Deleted %s %q\n", p.ID, p.Name)
		return nil
	})
}

type redeemCmd struct{}

func (*redeemCmd) Name() string     { return "redeem" }
func (*redeemCmd) Synopsis() string { return "mark a product as redeemed, or not anymore" }
func (*redeemCmd) Usage() string {
	return `redeem <product>

  Toggles the redeemed state of a product. Redeeming records today as the
  redemption date, undoing it clears the date.
`
}

func (*redeemCmd) SetFlags(*flag.FlagSet) {}

func (c *redeemCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ref, ok := oneProduct(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	return withBook(ctx, func(b *yieldbook.Book) error {
		p, err := b.Products.Lookup(ref)
		if err != nil {
			return err
		}
		if err := b.Products.ToggleRedeemed(p.ID); err != nil {
			return err
		}
		if p, _ = b.Products.Find(p.ID); p.Redeemed {
			fmt.Fprintf(stdout, "%q redeemed on %s\n", p.Name, p.RedemptionDate)
		} else {
			fmt.Fprintf(stdout, "%q is held again\n", p.Name)
		}
		return nil
	})
}
