package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/gbce"
	"github.com/google/subcommands"
)

type indexCmd struct {
	windowFlags
	trades bool
}

func (*indexCmd) Name() string     { return "index" }
func (*indexCmd) Synopsis() string { return "compute the GBCE All Share Index" }
func (*indexCmd) Usage() string {
	return `gbce index [-w <window>] [-at <time>] [-trades]

  Computes the GBCE All Share Index: the geometric mean of the volume weighted
  stock price of each stock, or of its quoted price when it was not traded
  recently. With -trades, computes the geometric mean of all the trade prices
  instead.
`
}

func (c *indexCmd) SetFlags(f *flag.FlagSet) {
	c.windowFlags.SetFlags(f)
	f.BoolVar(&c.trades, "trades", false, "Average every recorded trade price instead")
}

func (c *indexCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return subcommands.ExitFailure
	}

	label, index, err := c.compute(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing index: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %s\n", label, index.Decimal().StringFixed(gbce.IndexPrecision))
	return subcommands.ExitSuccess
}

// compute returns the selected index of the session market, and its name.
func (c *indexCmd) compute(s *session) (string, gbce.Money, error) {
	if c.trades {
		index, err := s.market.TradePriceIndex()
		return "Trade Price Index", index, err
	}
	now, window, err := c.resolve(s)
	if err != nil {
		return "", gbce.Money{}, err
	}
	index, err := s.market.AllShareIndex(now, window, s.scenario.Quotes())
	return "GBCE All Share Index", index, err
}
