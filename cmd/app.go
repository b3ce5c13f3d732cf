// Package cmd implements the CLI application to track wealth management products.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/yieldbook"
	"github.com/etnz/yieldbook/storage"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the settings read from the environment, they are the defaults of the global flags.
type Config struct {
	DataDir  string `env:"YB_DATA_DIR"`
	Storage  string `env:"YB_STORAGE"`
	Currency string `env:"YB_CURRENCY"`
	Verbose  bool   `env:"YB_VERBOSE"`
	Model    string `env:"YB_MODEL"`
}

// DefaultConfig returns the settings used when the environment sets none.
func DefaultConfig() Config {
	return Config{DataDir: ".yieldbook", Storage: "dir", Currency: "CNY", Model: "gemini-2.5-flash"}
}

// LoadConfig reads the configuration from the environment, after loading the
// optional .env file of the current directory. Unset variables keep their
// default value.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("cannot load .env: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid environment: %w", err)
	}
	return cfg, nil
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataDir     = flag.String("data-dir", DefaultConfig().DataDir, "Path to the folder holding the book")
	storageKind = flag.String("storage", DefaultConfig().Storage, "Storage backend of the book: dir or sqlite")
	currency    = flag.String("currency", DefaultConfig().Currency, "Currency of the amounts, 3-letter code")
	verbose     = flag.Bool("v", false, "Log diagnostics on stderr")
	raw         = flag.Bool("raw", false, "Print markdown as is, without terminal rendering")
)

// model is the default Gemini model of the assistant.
var model = DefaultConfig().Model

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// Configure makes cfg the defaults of the global flags, it must be called before parsing them.
func Configure(cfg Config) error {
	defaults := []struct{ name, value string }{
		{"data-dir", cfg.DataDir},
		{"storage", cfg.Storage},
		{"currency", cfg.Currency},
		{"v", strconv.FormatBool(cfg.Verbose)},
	}
	for _, d := range defaults {
		f := flag.Lookup(d.name)
		if err := f.Value.Set(d.value); err != nil {
			return fmt.Errorf("invalid default for -%s: %w", d.name, err)
		}
		f.DefValue = d.value
	}
	model = cfg.Model
	return nil
}

// Commands lists all the yb subcommands.
var Commands = []subcommands.Command{
	&addCmd{},
	&editCmd{},
	&rmCmd{},
	&redeemCmd{},
	&queryCmd{},
	&listCmd{},
	&showCmd{},
	&exportCmd{},
	&importCmd{},
	&topicCmd{},
	&assistCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// newLogger returns the diagnostic logger: a development logger in verbose
// mode, warnings only otherwise.
func newLogger() *zap.Logger {
	var l *zap.Logger
	var err error
	if *verbose {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		cfg.Encoding = "console"
		l, err = cfg.Build()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// OpenBook opens the book in the app data folder. close must be called when done.
func OpenBook(ctx context.Context) (b *yieldbook.Book, close func() error, err error) {
	log := newLogger()
	var s yieldbook.Storage
	close = func() error { log.Sync(); return nil }

	switch *storageKind {
	case "dir":
		d, err := storage.NewDir(*dataDir)
		if err != nil {
			return nil, nil, err
		}
		s = d
	case "sqlite":
		if err := os.MkdirAll(*dataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create data folder: %w", err)
		}
		db, err := storage.OpenSQLite(ctx, filepath.Join(*dataDir, "yieldbook.db"))
		if err != nil {
			return nil, nil, err
		}
		s = db
		close = func() error { log.Sync(); return db.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown storage %q, want dir or sqlite", *storageKind)
	}

	b, err = yieldbook.OpenBook(s, yieldbook.WithLogger(log.Named("book")))
	if err != nil {
		close()
		return nil, nil, err
	}
	return b, close, nil
}

// printMarkdown prints md to stdout, rendered for the terminal unless -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}

// failure reports err on stderr and returns the matching exit status.
func failure(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, yieldbook.ErrInvalidInput) || errors.Is(err, yieldbook.ErrInvalidFormat) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// withBook runs fn on the app book.
func withBook(ctx context.Context, fn func(*yieldbook.Book) error) subcommands.ExitStatus {
	b, close, err := OpenBook(ctx)
	if err != nil {
		return failure(err)
	}
	defer close()
	if err := fn(b); err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}

// parsePositive parses a positive finite number given for the named field.
func parsePositive(name, s string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(x, 0) || !(x > 0) {
		return 0, fmt.Errorf("%w: %s must be a positive number, got %q", yieldbook.ErrInvalidInput, name, s)
	}
	return x, nil
}

// parsePercent parses an optional percent given for the named field, "" is unset.
func parsePercent(name, s string) (*yieldbook.Percent, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return nil, nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(x, 0) || math.IsNaN(x) {
		return nil, fmt.Errorf("%w: %s must be a number, got %q", yieldbook.ErrInvalidInput, name, s)
	}
	p := yieldbook.Percent(x)
	return &p, nil
}

// parseName validates a product name.
func parseName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: the product name is required", yieldbook.ErrInvalidInput)
	}
	return s, nil
}

// parseRisk validates a risk level.
func parseRisk(s string) (yieldbook.RiskLevel, error) {
	r, err := yieldbook.ParseRiskLevel(s)
	if err != nil {
		return r, fmt.Errorf("%w: %v", yieldbook.ErrInvalidInput, err)
	}
	return r, nil
}
