package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/gbce/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	windowFlags
	json  bool
	query string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display every metric of every stock" }
func (*reportCmd) Usage() string {
	return `gbce report [-w <window>] [-at <time>] [-json] [-q <jsonpath>]

  Displays the price, dividend yield and P/E ratio of each stock, and the
  market indexes. With -json the report is printed as JSON, -q selects a part
  of it with a JSONPath expression (e.g., '$.stocks[*].pe_ratio').
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.windowFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the report as JSON")
	f.StringVar(&c.query, "q", "", "JSONPath expression selecting a part of the JSON report (implies -json)")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return subcommands.ExitFailure
	}
	now, window, err := c.resolve(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	report, err := s.market.NewReport(now, window, s.scenario.Quotes())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating report: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.json && c.query == "" {
		printMarkdown(renderer.ReportMarkdown(report))
		return subcommands.ExitSuccess
	}

	out, err := queryJSON(report, c.query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}

// queryJSON marshals v and selects the query JSONPath in it. An empty query selects everything.
func queryJSON(v any, query string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cannot encode report: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot decode report: %w", err)
	}
	if query != "" {
		doc, err = jsonpath.Get(query, doc)
		if err != nil {
			return nil, fmt.Errorf("invalid query %q: %w", query, err)
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}
