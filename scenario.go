package gbce

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Scenario describes a market to set up: the listed stocks, the trades
// already executed and the quoted prices of the stocks.
//
// It is read from YAML:
//
//	currency: GBP
//	window: 15m
//	stocks:
//	  - {symbol: GIN, type: preferred, last_dividend: 8, fixed_dividend: 2, par_value: 100}
//	trades:
//	  - {symbol: GIN, ago: 5m, quantity: 250, side: sell, price: 140}
//	prices:
//	  GIN: 140
type Scenario struct {
	Currency string             `yaml:"currency"`
	Window   time.Duration      `yaml:"window"`
	Now      time.Time          `yaml:"now"` // Reference time, defaults to the time the market is built.
	Stocks   []ScenarioStock    `yaml:"stocks"`
	Trades   []ScenarioTrade    `yaml:"trades"`
	Prices   map[string]float64 `yaml:"prices"`
}

// ScenarioStock declares a listed stock.
type ScenarioStock struct {
	Symbol        string   `yaml:"symbol"`
	Type          string   `yaml:"type"`
	LastDividend  float64  `yaml:"last_dividend"`
	FixedDividend *float64 `yaml:"fixed_dividend"` // percent, preferred stocks only.
	ParValue      float64  `yaml:"par_value"`
}

// ScenarioTrade declares a trade, either at an absolute Time or some duration Ago before now.
type ScenarioTrade struct {
	Symbol   string        `yaml:"symbol"`
	Time     time.Time     `yaml:"time"`
	Ago      time.Duration `yaml:"ago"`
	Quantity int64         `yaml:"quantity"`
	Side     string        `yaml:"side"`
	Price    float64       `yaml:"price"`
}

// DecodeScenario reads a YAML scenario and applies defaults.
func DecodeScenario(r io.Reader) (*Scenario, error) {
	s := &Scenario{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	// Defaults
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	if s.Window == 0 {
		s.Window = DefaultWindow
	}
	return s, s.Validate()
}

// Validate checks the fields that do not need a market to be checked.
func (s *Scenario) Validate() error {
	if s.Window < 0 {
		return fmt.Errorf("%w: window must be positive, got %s", ErrInvalidWindow, s.Window)
	}
	for i, t := range s.Trades {
		if !t.Time.IsZero() && t.Ago != 0 {
			return fmt.Errorf("trade #%d: %w: time and ago are mutually exclusive", i, ErrInvalidTrade)
		}
		if t.Ago < 0 {
			return fmt.Errorf("trade #%d: %w: ago must not be negative, got %s", i, ErrInvalidTrade, t.Ago)
		}
	}
	return nil
}

// Reference returns the scenario time if set, or fallback.
func (s *Scenario) Reference(fallback time.Time) time.Time {
	if s.Now.IsZero() {
		return fallback
	}
	return s.Now
}

// Market builds the market described by the scenario. Relative trades are placed before now.
func (s *Scenario) Market(now time.Time) (*Market, error) {
	m := NewMarket(s.Currency)
	for i, st := range s.Stocks {
		kind, err := ParseStockType(st.Type)
		if err != nil {
			return nil, fmt.Errorf("stock #%d: %w: %v", i, ErrInvalidStock, err)
		}
		var fixed *decimal.Decimal
		if st.FixedDividend != nil {
			f := decimal.NewFromFloat(*st.FixedDividend)
			fixed = &f
		}
		stock, err := NewStock(st.Symbol, kind, M(st.LastDividend, s.Currency), fixed, M(st.ParValue, s.Currency))
		if err != nil {
			return nil, fmt.Errorf("stock #%d: %w", i, err)
		}
		if err := m.Add(stock); err != nil {
			return nil, fmt.Errorf("stock #%d: %w", i, err)
		}
	}

	for i, t := range s.Trades {
		side, err := ParseSide(t.Side)
		if err != nil {
			return nil, fmt.Errorf("trade #%d: %w: %v", i, ErrInvalidTrade, err)
		}
		on := t.Time
		if on.IsZero() {
			on = now.Add(-t.Ago)
		}
		if _, err := m.RecordTrade(t.Symbol, Q(t.Quantity), side, M(t.Price, s.Currency), on); err != nil {
			return nil, fmt.Errorf("trade #%d: %w", i, err)
		}
	}
	return m, nil
}

// Quotes returns the quoted prices of the scenario.
func (s *Scenario) Quotes() map[string]Money {
	quotes := make(map[string]Money, len(s.Prices))
	for symbol, p := range s.Prices {
		quotes[symbol] = M(p, s.Currency)
	}
	return quotes
}
