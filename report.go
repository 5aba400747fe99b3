package gbce

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Report is a snapshot of every stock metric and of the market indexes at a given time.
type Report struct {
	Time            time.Time     `json:"time"`
	Window          string        `json:"window"` // VWAP lookback, as a duration string.
	Currency        string        `json:"currency"`
	Stocks          []StockReport `json:"stocks"`
	Index           *Money        `json:"index"`             // GBCE All Share Index, nil when no stock has a price.
	TradePriceIndex *Money        `json:"trade_price_index"` // Geometric mean of all trade prices, nil without trades.
}

// StockReport holds the metrics of a single stock.
type StockReport struct {
	Symbol        string              `json:"symbol"`
	Type          StockType           `json:"type"`
	LastDividend  Money               `json:"last_dividend"`
	FixedDividend decimal.NullDecimal `json:"fixed_dividend"`
	ParValue      Money               `json:"par_value"`
	Price         *Money              `json:"price"`
	PriceSource   PriceSource         `json:"price_source"`
	DividendYield decimal.NullDecimal `json:"dividend_yield"`
	PERatio       decimal.NullDecimal `json:"pe_ratio"`
	Volume        Quantity            `json:"volume"` // Volume traded within the window.
	Trades        int                 `json:"trades"` // Number of trades within the window.
}

// NewReport computes a Report as of now.
//
// The price of each stock is its VWAP over window, or its quote when no trade
// is available. Ratios that cannot be computed are left null.
func (m *Market) NewReport(now time.Time, window time.Duration, quotes map[string]Money) (*Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	priced, err := m.priceAll(now, window, quotes)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Time:     now,
		Window:   window.String(),
		Currency: m.currency,
		Stocks:   make([]StockReport, 0, len(priced)),
	}

	var values []decimal.Decimal
	for _, p := range priced {
		s := p.stock
		row := StockReport{
			Symbol:       s.symbol,
			Type:         s.kind,
			LastDividend: s.lastDividend,
			ParValue:     s.parValue,
			PriceSource:  p.source,
			Volume:       p.vwap.Volume,
			Trades:       p.vwap.Trades,
		}
		if fixed, ok := s.FixedDividend(); ok {
			row.FixedDividend = decimal.NewNullDecimal(fixed)
		}
		if p.source != NoPrice {
			price := p.price
			row.Price = &price
			values = append(values, price.Decimal())
			if y, err := s.DividendYield(price); err == nil {
				row.DividendYield = decimal.NewNullDecimal(y)
			}
			if pe, err := s.PERatio(price); err == nil {
				row.PERatio = decimal.NewNullDecimal(pe)
			}
		}
		r.Stocks = append(r.Stocks, row)
	}

	if index, err := GeometricMean(values); err == nil {
		idx := M(index, m.currency)
		r.Index = &idx
	} else if !errors.Is(err, ErrEmptyMarket) {
		return nil, err
	}

	if index, err := GeometricMean(m.tradePrices()); err == nil {
		idx := M(index, m.currency)
		r.TradePriceIndex = &idx
	}
	return r, nil
}
