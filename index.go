package gbce

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// IndexPrecision is the number of decimal places kept in index values.
const IndexPrecision = 8

// GeometricMean returns the n-th root of the product of n positive values.
//
// The mean is computed as exp(mean(ln(x))) in decimal arithmetic, so the
// product never overflows whatever the magnitude of the values. Logarithms are
// summed in ascending order of the values, the result does not depend on the
// order of the input. It is rounded to IndexPrecision decimal places.
func GeometricMean(values []decimal.Decimal) (decimal.Decimal, error) {
	if len(values) == 0 {
		return decimal.Zero, fmt.Errorf("%w: no price to average", ErrEmptyMarket)
	}
	var digits int32 = 1
	for _, v := range values {
		if !v.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: geometric mean needs positive values, got %s", ErrInvalidPrice, v)
		}
		digits = max(digits, int32(v.NumDigits())+v.Exponent())
	}
	if len(values) == 1 {
		return values[0], nil
	}

	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return a.Cmp(b) })

	// the result has up to digits integer digits, all of them must be exact.
	precision := IndexPrecision + digits + lnGuardDigits
	var sum, ln, prev decimal.Decimal
	for i, v := range sorted {
		if i == 0 || !v.Equal(prev) {
			var err error
			if ln, err = v.Ln(precision); err != nil {
				return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
			}
			prev = v
		}
		sum = sum.Add(ln)
	}
	mean := sum.DivRound(decimal.NewFromInt(int64(len(sorted))), precision)

	// exp(mean) = exp(r) × 10^k with r in [0, ln 10).
	ln10, err := decimal.New(10, 0).Ln(precision)
	if err != nil {
		return decimal.Zero, err
	}
	k := mean.DivRound(ln10, precision).Floor()
	e, err := mean.Sub(k.Mul(ln10)).ExpTaylor(precision)
	if err != nil {
		return decimal.Zero, err
	}
	return e.Shift(int32(k.IntPart())).Round(IndexPrecision), nil
}

// lnGuardDigits are the extra decimal places of the logarithms.
const lnGuardDigits = 8

// AllShareIndex returns the GBCE All Share Index as of now.
//
// Each stock is represented by its VWAP over window when trades are
// available, otherwise by its quoted price in quotes. Stocks with neither are
// left out. It fails with ErrEmptyMarket when no stock has a usable price.
func (m *Market) AllShareIndex(now time.Time, window time.Duration, quotes map[string]Money) (Money, error) {
	m.mu.RLock()
	prices, err := m.representativePrices(now, window, quotes)
	m.mu.RUnlock()
	if err != nil {
		return Money{}, err
	}
	values := make([]decimal.Decimal, 0, len(prices))
	for _, p := range prices {
		values = append(values, p.price.Decimal())
	}
	mean, err := GeometricMean(values)
	if err != nil {
		return Money{}, fmt.Errorf("all share index: %w", err)
	}
	return M(mean, m.currency), nil
}

// TradePriceIndex returns the geometric mean of the price of every recorded trade, across all stocks.
func (m *Market) TradePriceIndex() (Money, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mean, err := GeometricMean(m.tradePrices())
	if err != nil {
		return Money{}, fmt.Errorf("trade price index: %w", err)
	}
	return M(mean, m.currency), nil
}

// tradePrices returns the price of every recorded trade. It must be called with the read lock held.
func (m *Market) tradePrices() []decimal.Decimal {
	var values []decimal.Decimal
	for _, s := range m.stocks {
		for t := range m.trades[s.symbol].Values() {
			values = append(values, t.Price.Decimal())
		}
	}
	return values
}
