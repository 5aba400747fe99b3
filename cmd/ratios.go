package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/gbce"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// priceFlags are the flags of the commands computing a ratio at a market price.
type priceFlags struct {
	symbol string
	price  string
}

func (p *priceFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "s", "", "Stock symbol (e.g., 'GIN')")
	f.StringVar(&p.price, "p", "", "Market price of the stock")
}

// run computes a ratio with compute and prints it.
func (p *priceFlags) run(name string, compute func(m *gbce.Market, symbol string, price gbce.Money) (decimal.Decimal, error)) subcommands.ExitStatus {
	if p.symbol == "" || p.price == "" {
		fmt.Fprintln(os.Stderr, "Error: -s and -p flags are both required.")
		return subcommands.ExitUsageError
	}
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return subcommands.ExitFailure
	}
	price, err := s.price(p.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}
	r, err := compute(s.market, p.symbol, price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing %s: %v\n", name, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s of %s at %s: %s\n", name, p.symbol, price, r.StringFixed(4))
	return subcommands.ExitSuccess
}

type yieldCmd struct{ priceFlags }

func (*yieldCmd) Name() string     { return "yield" }
func (*yieldCmd) Synopsis() string { return "compute the dividend yield of a stock" }
func (*yieldCmd) Usage() string {
	return `gbce yield -s <symbol> -p <price>

  Computes the dividend yield of a stock at the given market price.
`
}

func (c *yieldCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run("Dividend yield", (*gbce.Market).DividendYield)
}

type peCmd struct{ priceFlags }

func (*peCmd) Name() string     { return "pe" }
func (*peCmd) Synopsis() string { return "compute the P/E ratio of a stock" }
func (*peCmd) Usage() string {
	return `gbce pe -s <symbol> -p <price>

  Computes the price to earnings ratio of a stock at the given market price.
  It fails for stocks that paid no dividend.
`
}

func (c *peCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run("P/E ratio", (*gbce.Market).PERatio)
}
