package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/gbce"
	"github.com/etnz/gbce/renderer"
	"github.com/google/subcommands"
)

type vwapCmd struct {
	windowFlags
	symbol string
	list   bool
}

func (*vwapCmd) Name() string     { return "vwap" }
func (*vwapCmd) Synopsis() string { return "compute the volume weighted stock price" }
func (*vwapCmd) Usage() string {
	return `gbce vwap -s <symbol> [-w <window>] [-at <time>] [-l]

  Computes the volume weighted stock price of a stock over the trades of the
  last 15 minutes, or the given window.
`
}

func (c *vwapCmd) SetFlags(f *flag.FlagSet) {
	c.windowFlags.SetFlags(f)
	f.StringVar(&c.symbol, "s", "", "Stock symbol (e.g., 'ALE')")
	f.BoolVar(&c.list, "l", false, "List the trades within the window")
}

func (c *vwapCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s flag is required.")
		return subcommands.ExitUsageError
	}
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

	trades, err := s.market.RecentTrades(c.symbol, now, window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing volume weighted stock price: %v\n", err)
		return subcommands.ExitFailure
	}
	v := gbce.VolumeWeightedPrice(trades)
	md := renderer.VWAPMarkdown(c.symbol, now, window, v)
	if c.list && v.Available() {
		md += "\n" + renderer.TradesMarkdown(trades)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
