package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/gbce/renderer"
	"github.com/google/subcommands"
)

type stocksCmd struct{}

func (*stocksCmd) Name() string     { return "stocks" }
func (*stocksCmd) Synopsis() string { return "list the stocks listed on the exchange" }
func (*stocksCmd) Usage() string {
	return `gbce stocks

  Lists the stocks of the market with their type, dividend and par value.
`
}

func (c *stocksCmd) SetFlags(f *flag.FlagSet) {}

func (c *stocksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.StocksMarkdown(s.market.Stocks()))
	return subcommands.ExitSuccess
}
