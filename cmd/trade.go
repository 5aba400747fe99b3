package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/gbce"
	"github.com/etnz/gbce/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type tradeCmd struct {
	windowFlags
	symbol   string
	quantity string
	side     string
	price    string
}

func (*tradeCmd) Name() string     { return "trade" }
func (*tradeCmd) Synopsis() string { return "record a trade and show the new VWAP" }
func (*tradeCmd) Usage() string {
	return `gbce trade -s <symbol> -q <quantity> -side buy|sell -p <price> [-at <time>] [-w <window>]

  Records a trade in the market and prints the resulting volume weighted stock
  price. The market lives for a single command, the trade is not saved.
`
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	c.windowFlags.SetFlags(f)
	f.StringVar(&c.symbol, "s", "", "Stock symbol (e.g., 'POP')")
	f.StringVar(&c.quantity, "q", "", "Number of shares traded")
	f.StringVar(&c.side, "side", "buy", "Trade side: buy or sell")
	f.StringVar(&c.price, "p", "", "Price of one share")
}

func (c *tradeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity == "" || c.price == "" {
		fmt.Fprintln(os.Stderr, "Error: -s, -q and -p flags are all required.")
		return subcommands.ExitUsageError
	}
	side, err := gbce.ParseSide(c.side)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing side: %v\n", err)
		return subcommands.ExitUsageError
	}
	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return subcommands.ExitFailure
	}
	price, err := s.price(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}
	now, window, err := c.resolve(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	t, err := s.market.RecordTrade(c.symbol, gbce.Q(quantity), side, price, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording trade: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Printf("recorded trade %s", t.ID)

	v, err := s.market.VolumeWeightedPrice(c.symbol, now, window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing volume weighted stock price: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TradesMarkdown([]gbce.Trade{t}) + "\n" + renderer.VWAPMarkdown(c.symbol, now, window, v))
	return subcommands.ExitSuccess
}
