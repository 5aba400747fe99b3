package cmd

import (
	"bytes"
	"flag"
	"os"

	"github.com/etnz/gbce"
	"github.com/etnz/gbce/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the gbce command line.
// global declares the global flags, it is usually flag.CommandLine.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	for _, c := range Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		sub := &complete.Command{Flags: flagPredictors(f)}
		if c.Name() == "topic" {
			sub.Args = complete.PredictFunc(predictTopics)
		}
		root.Sub[c.Name()] = sub
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(commandNames())}
	return root
}

func commandNames() []string {
	names := make([]string, 0, len(Commands))
	for _, c := range Commands {
		names = append(names, c.Name())
	}
	return names
}

// flagPredictors returns the predictor of each flag in f.
func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	predictors := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		switch {
		case fl.Name == "scenario":
			predictors[fl.Name] = predict.Files("*.yaml")
		case fl.Name == "s":
			predictors[fl.Name] = complete.PredictFunc(predictSymbols)
		case fl.Name == "side":
			predictors[fl.Name] = predict.Set{string(gbce.Buy), string(gbce.Sell)}
		case isBoolFlag(fl):
			predictors[fl.Name] = predict.Nothing
		default:
			predictors[fl.Name] = predict.Something
		}
	})
	return predictors
}

func isBoolFlag(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

func predictTopics(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(topics, "readme", "*")
}

// predictSymbols lists the stocks of the scenario from the environment, flags are not parsed while completing.
func predictSymbols(prefix string) []string {
	content := sampleScenario
	if file := os.Getenv(EnvScenarioFile); file != "" {
		var err error
		if content, err = os.ReadFile(file); err != nil {
			return nil
		}
	}
	s, err := gbce.DecodeScenario(bytes.NewReader(content))
	if err != nil {
		return nil
	}
	symbols := make([]string, 0, len(s.Stocks))
	for _, st := range s.Stocks {
		symbols = append(symbols, st.Symbol)
	}
	return symbols
}
