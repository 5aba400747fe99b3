package gbce

import (
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultWindow is the lookback of the volume weighted stock price.
const DefaultWindow = 15 * time.Minute

// Market holds the stocks of the exchange and their trades for one simulation run.
//
// A Market is safe for concurrent use: trades are recorded one at a time and
// queries work on a copy of the trade logs.
type Market struct {
	mu       sync.RWMutex
	currency string
	stocks   []*Stock             // in registration order
	index    map[string]*Stock    // index stocks by symbol
	trades   map[string]*TradeLog // index trade logs by symbol
}

// NewMarket returns a new empty market quoted in currency.
func NewMarket(currency string) *Market {
	return &Market{
		currency: currency,
		stocks:   make([]*Stock, 0),
		index:    make(map[string]*Stock),
		trades:   make(map[string]*TradeLog),
	}
}

// Currency returns the currency the market is quoted in.
func (m *Market) Currency() string { return m.currency }

// Add registers a stock. Symbols must be unique.
func (m *Market) Add(s *Stock) error {
	if s == nil {
		return fmt.Errorf("%w: nil stock", ErrInvalidStock)
	}
	if c := s.Currency(); c != "" && m.currency != "" && c != m.currency {
		return fmt.Errorf("%w: %s is quoted in %s, market is quoted in %s", ErrInvalidStock, s.symbol, c, m.currency)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.index[s.symbol]; exists {
		return fmt.Errorf("%w: %s is already listed", ErrInvalidStock, s.symbol)
	}
	m.stocks = append(m.stocks, s)
	m.index[s.symbol] = s
	m.trades[s.symbol] = &TradeLog{}
	return nil
}

// Has reports whether symbol is listed.
func (m *Market) Has(symbol string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.index[symbol]
	return ok
}

// Get returns the stock listed with symbol, or nil if unknown.
func (m *Market) Get(symbol string) *Stock {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index[symbol]
}

// Stocks returns an iterator over the listed stocks, in registration order.
func (m *Market) Stocks() iter.Seq[*Stock] {
	m.mu.RLock()
	stocks := slices.Clone(m.stocks)
	m.mu.RUnlock()
	return slices.Values(stocks)
}

// Len returns the number of listed stocks.
func (m *Market) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stocks)
}

func (m *Market) stock(symbol string) (*Stock, error) {
	s, ok := m.index[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStock, symbol)
	}
	return s, nil
}

// RecordTrade records a trade of quantity shares of symbol at price.
func (m *Market) RecordTrade(symbol string, quantity Quantity, side Side, price Money, on time.Time) (Trade, error) {
	return m.Record(NewTrade(symbol, quantity, side, price, on))
}

// Record validates and appends a trade to its stock's log. It returns the
// trade as recorded: a price with no currency gets the stock currency.
func (m *Market) Record(t Trade) (Trade, error) {
	if err := t.Validate(); err != nil {
		return t, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.stock(t.Symbol)
	if err != nil {
		return t, err
	}
	// a price with no currency is in the stock currency.
	if t.Price.Currency() == "" {
		t.Price = t.Price.WithCurrency(s.Currency())
	} else if !sameCurrency(t.Price, s.parValue) {
		return t, fmt.Errorf("%w: %s trade currency %s does not match stock currency %s", ErrInvalidTrade, t.Symbol, t.Price.Currency(), s.Currency())
	}
	m.trades[t.Symbol].Append(t)
	return t, nil
}

// Trades returns a copy of the trades recorded for symbol, in chronological order.
func (m *Market) Trades(symbol string) ([]Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, err := m.stock(symbol); err != nil {
		return nil, err
	}
	return slices.Collect(m.trades[symbol].Values()), nil
}

// DividendYield returns the dividend yield of symbol at price.
func (m *Market) DividendYield(symbol string, price Money) (decimal.Decimal, error) {
	s := m.Get(symbol)
	if s == nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownStock, symbol)
	}
	return s.DividendYield(price)
}

// PERatio returns the P/E ratio of symbol at price.
func (m *Market) PERatio(symbol string, price Money) (decimal.Decimal, error) {
	s := m.Get(symbol)
	if s == nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownStock, symbol)
	}
	return s.PERatio(price)
}

// RecentTrades returns a copy of the trades of symbol within [now-window, now], trades after now excluded.
func (m *Market) RecentTrades(symbol string, now time.Time, window time.Duration) ([]Trade, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %s", ErrInvalidWindow, window)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, err := m.stock(symbol); err != nil {
		return nil, err
	}
	return m.trades[symbol].Between(now.Add(-window), now), nil
}

// VolumeWeightedPrice returns the VWAP of symbol over the trades recorded
// within [now-window, now]. Trades timestamped after now are excluded.
//
// When no trade falls in the window the returned VWAP is not Available, this is not an error.
func (m *Market) VolumeWeightedPrice(symbol string, now time.Time, window time.Duration) (VWAP, error) {
	trades, err := m.RecentTrades(symbol, now, window)
	if err != nil {
		return VWAP{}, err
	}
	return VolumeWeightedPrice(trades), nil
}

func (m *Market) vwap(symbol string, now time.Time, window time.Duration) VWAP {
	return VolumeWeightedPrice(m.trades[symbol].Between(now.Add(-window), now))
}

// PriceSource tells where the representative price of a stock comes from.
type PriceSource string

const (
	FromVWAP  PriceSource = "vwap"
	FromQuote PriceSource = "quote"
	NoPrice   PriceSource = "none"
)

// pricedStock is a stock with its representative price.
type pricedStock struct {
	stock  *Stock
	price  Money
	source PriceSource
	vwap   VWAP
}

// priceAll selects a price for every listed stock, NoPrice when it has none.
// It must be called with the read lock held.
func (m *Market) priceAll(now time.Time, window time.Duration, quotes map[string]Money) ([]pricedStock, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %s", ErrInvalidWindow, window)
	}
	for symbol, q := range quotes {
		s, err := m.stock(symbol)
		if err != nil {
			return nil, fmt.Errorf("quote: %w", err)
		}
		if !sameCurrency(q, s.parValue) {
			return nil, fmt.Errorf("%w: quote for %s is in %s, stock is quoted in %s", ErrInvalidPrice, symbol, q.Currency(), s.Currency())
		}
		if !q.IsPositive() {
			return nil, fmt.Errorf("%w: quote for %s must be positive, got %s", ErrInvalidPrice, symbol, q.Decimal())
		}
	}

	priced := make([]pricedStock, 0, len(m.stocks))
	for _, s := range m.stocks {
		p := pricedStock{stock: s, source: NoPrice, vwap: m.vwap(s.symbol, now, window)}
		if p.vwap.Available() {
			p.price, p.source = p.vwap.Price, FromVWAP
		} else if q, ok := quotes[s.symbol]; ok {
			p.price, p.source = q.WithCurrency(s.Currency()), FromQuote
		}
		priced = append(priced, p)
	}
	return priced, nil
}

// representativePrices selects one price per listed stock, leaving out stocks
// without any. It must be called with the read lock held.
func (m *Market) representativePrices(now time.Time, window time.Duration, quotes map[string]Money) ([]pricedStock, error) {
	priced, err := m.priceAll(now, window, quotes)
	if err != nil {
		return nil, err
	}
	priced = slices.DeleteFunc(priced, func(p pricedStock) bool { return p.source == NoPrice })
	if len(priced) == 0 {
		return nil, fmt.Errorf("%w: none of the %d stocks has a price", ErrEmptyMarket, len(m.stocks))
	}
	return priced, nil
}
