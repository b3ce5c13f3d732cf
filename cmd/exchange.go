package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/yieldbook"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the book to a JSON file" }
func (*exportCmd) Usage() string {
	return `export [-o <file>]

  Writes all the products and query records to a JSON file, by default
  financial-products-YYYY-MM-DD.json for today. Use -o - for stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(ctx, func(b *yieldbook.Book) error {
		if c.output == "-" {
			return b.Export(stdout)
		}
		name := c.output
		if name == "" {
			name = yieldbook.ExportFilename(today())
		}
		out, err := os.Create(name)
		if err != nil {
			return err
		}
		if err := b.Export(out); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported %d products and %d records to %s\n", b.Products.Len(), b.Records.Len(), name)
		return nil
	})
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the book with a JSON export" }
func (*importCmd) Usage() string {
	return `import <file>

  Replaces all the products and query records with the content of an export
  file. Nothing changes if the file is not a valid export.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return failure(fmt.Errorf("%w: exactly one file to import is required", yieldbook.ErrInvalidInput))
	}
	in, err := os.Open(f.Arg(0))
	if err != nil {
		return failure(err)
	}
	defer in.Close()

	return withBook(ctx, func(b *yieldbook.Book) error {
		s, err := b.Import(in)
		if err != nil {
			return err
		}
		for _, w := range s.Warnings() {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
		fmt.Fprintf(stdout, "Imported %d products and %d records\n", len(s.Products), len(s.Records))
		return nil
	})
}
