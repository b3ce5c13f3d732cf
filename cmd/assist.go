package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/yieldbook"
	"github.com/etnz/yieldbook/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	model string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `assist [<question>]

  Start an interactive session with the AI assistant, about the products of
  the book. It requires a Gemini API key in GEMINI_API_KEY.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", model, "Gemini model")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	return withBook(ctx, func(b *yieldbook.Book) error {
		log := newLogger().Named("assist")
		analyst := agent.NewAnalyst(c.model, b, *currency)
		advisor := agent.NewAdvisor(c.model)
		analyst.Log, advisor.Log = log, log

		a := agent.New(os.Stdout, os.Stdin, c.model, analyst, advisor)
		if err := a.Run(ctx, client, initialPrompt); err != nil {
			return fmt.Errorf("agent failed: %w", err)
		}
		return nil
	})
}
