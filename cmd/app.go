// Package cmd implements the CLI application to compute the GBCE metrics.
package cmd

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/gbce"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// Commands lists the gbce subcommands.
var Commands = []subcommands.Command{
	&stocksCmd{},
	&yieldCmd{},
	&peCmd{},
	&vwapCmd{},
	&tradeCmd{},
	&indexCmd{},
	&reportCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

//go:embed sample.yaml
var sampleScenario []byte

// Config holds the global flags of the application.
type Config struct {
	ScenarioFile string // scenario to load, the sample market when empty.
	Currency     string // overrides the scenario currency when set.
	Verbose      bool
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
var config Config

// SetFlags declares the global flags on f.
func (c *Config) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ScenarioFile, "scenario", "", "Path to the scenario file (YAML). Defaults to the sample market.")
	f.StringVar(&c.Currency, "currency", "", "Currency of the market. Defaults to the scenario currency.")
	f.BoolVar(&c.Verbose, "v", false, "Verbose logging")
}

// ApplyEnv fills the flags that were not set on the command line from the environment.
func (c *Config) ApplyEnv(f *flag.FlagSet, getenv func(string) string) error {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if v := getenv(EnvScenarioFile); v != "" && !set["scenario"] {
		c.ScenarioFile = v
	}
	if v := getenv(EnvCurrency); v != "" && !set["currency"] {
		c.Currency = v
	}
	if v := getenv(EnvVerbose); v != "" && !set["v"] {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvVerbose, err)
		}
		c.Verbose = verbose
	}
	return nil
}

// Flags declares the global flags on the command line.
func Flags(f *flag.FlagSet) { config.SetFlags(f) }

// Configure completes the global flags from the environment, it must be called after f is parsed.
func Configure(f *flag.FlagSet) error {
	if err := config.ApplyEnv(f, os.Getenv); err != nil {
		return err
	}
	if !config.Verbose {
		log.SetOutput(io.Discard)
	}
	return nil
}

// session is the market of a single command execution.
type session struct {
	scenario *gbce.Scenario
	market   *gbce.Market
	now      time.Time
}

// openSession loads the configured scenario and builds its market.
func openSession() (*session, error) {
	source, content := "sample market", sampleScenario
	if config.ScenarioFile != "" {
		var err error
		source = config.ScenarioFile
		content, err = os.ReadFile(config.ScenarioFile)
		if err != nil {
			return nil, fmt.Errorf("read scenario: %w", err)
		}
	}

	s, err := gbce.DecodeScenario(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if config.Currency != "" {
		s.Currency = config.Currency
	}

	now := s.Reference(time.Now())
	m, err := s.Market(now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	log.Printf("loaded %d stocks and %d trades from %s", m.Len(), len(s.Trades), source)
	return &session{scenario: s, market: m, now: now}, nil
}

// price parses a price in the session currency.
func (s *session) price(value string) (gbce.Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return gbce.Money{}, fmt.Errorf("invalid price %q: %w", value, err)
	}
	return gbce.M(d, s.scenario.Currency), nil
}

// windowFlags are the flags of the commands that look at recent trades.
type windowFlags struct {
	window time.Duration
	at     string
}

func (w *windowFlags) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&w.window, "w", 0, "Lookback of the volume weighted stock price. Defaults to the scenario window.")
	f.StringVar(&w.at, "at", "", "Time of the computation (RFC 3339). Defaults to the scenario time or now.")
}

// resolve returns the time and window to use in s.
func (w *windowFlags) resolve(s *session) (now time.Time, window time.Duration, err error) {
	now, window = s.now, s.scenario.Window
	if w.window != 0 {
		window = w.window
	}
	if w.at != "" {
		now, err = time.Parse(time.RFC3339, w.at)
		if err != nil {
			return now, window, fmt.Errorf("invalid time %q: %w", w.at, err)
		}
	}
	return now, window, nil
}

// printMarkdown renders md for the terminal, or prints it as is if it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		log.Printf("cannot create markdown renderer: %v", err)
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("cannot render markdown: %v", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
