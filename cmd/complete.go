package cmd

import (
	"flag"

	"github.com/etnz/yieldbook"
	"github.com/etnz/yieldbook/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of yb, built from the global flags
// and the flags of every subcommand.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictors(flag.CommandLine),
	}
	for _, c := range Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{
			Flags: predictors(f),
			Args:  argsPredictor(c.Name()),
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

// predictors returns the value predictor of each flag in f.
func predictors(f *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[fl.Name] = predict.Nothing
			return
		}
		switch fl.Name {
		case "risk":
			var levels predict.Set
			for _, r := range yieldbook.RiskLevels[1:] {
				levels = append(levels, string(r))
			}
			m[fl.Name] = levels
		case "storage":
			m[fl.Name] = predict.Set{"dir", "sqlite"}
		case "data-dir":
			m[fl.Name] = predict.Dirs("*")
		case "o":
			m[fl.Name] = predict.Files("*.json")
		default:
			m[fl.Name] = predict.Something
		}
	})
	return m
}

func argsPredictor(command string) complete.Predictor {
	switch command {
	case "import":
		return predict.Files("*.json")
	case "topic":
		topics, _ := docs.GetAllTopics()
		return predict.Set(topics)
	}
	return nil
}
