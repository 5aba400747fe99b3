package gbce

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StockType tells how the dividend yield of a stock is computed.
type StockType int

const (
	// Common stocks yield their last dividend.
	Common StockType = iota
	// Preferred stocks yield a fixed percentage of their par value.
	Preferred
)

func (t StockType) String() string {
	switch t {
	case Common:
		return "common"
	case Preferred:
		return "preferred"
	default:
		return "unknown"
	}
}

// ParseStockType parses a string into a StockType.
func ParseStockType(s string) (StockType, error) {
	switch strings.ToLower(s) {
	case "common":
		return Common, nil
	case "preferred":
		return Preferred, nil
	default:
		return 0, fmt.Errorf("unknown stock type: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t StockType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

var hundred = decimal.NewFromInt(100)

// Stock is a financial instrument listed on the exchange.
//
// A Stock is immutable, use NewCommonStock or NewPreferredStock to create one.
type Stock struct {
	symbol        string
	kind          StockType
	lastDividend  Money
	fixedDividend decimal.Decimal // percent of par value, Preferred only.
	parValue      Money
}

// NewCommonStock creates a validated common stock.
func NewCommonStock(symbol string, lastDividend, parValue Money) (*Stock, error) {
	return NewStock(symbol, Common, lastDividend, nil, parValue)
}

// NewPreferredStock creates a validated preferred stock. fixedDividend is a percentage in [0, 100].
func NewPreferredStock(symbol string, lastDividend Money, fixedDividend decimal.Decimal, parValue Money) (*Stock, error) {
	return NewStock(symbol, Preferred, lastDividend, &fixedDividend, parValue)
}

// NewStock creates a validated stock of any type.
//
// fixedDividend must be set for Preferred stocks and nil for Common ones.
func NewStock(symbol string, kind StockType, lastDividend Money, fixedDividend *decimal.Decimal, parValue Money) (*Stock, error) {
	s := &Stock{
		symbol:       symbol,
		kind:         kind,
		lastDividend: lastDividend,
		parValue:     parValue,
	}
	if fixedDividend != nil {
		s.fixedDividend = *fixedDividend
	}
	if err := s.validate(fixedDividend != nil); err != nil {
		return nil, fmt.Errorf("stock %q: %w", symbol, err)
	}
	return s, nil
}

func (s *Stock) validate(hasFixed bool) error {
	if s.symbol == "" {
		return fmt.Errorf("%w: symbol is missing", ErrInvalidStock)
	}
	if s.lastDividend.IsNegative() {
		return fmt.Errorf("%w: last dividend must not be negative, got %s", ErrInvalidStock, s.lastDividend.Decimal())
	}
	if !s.parValue.IsPositive() {
		return fmt.Errorf("%w: par value must be positive, got %s", ErrInvalidStock, s.parValue.Decimal())
	}
	if !sameCurrency(s.lastDividend, s.parValue) {
		return fmt.Errorf("%w: last dividend currency %s does not match par value currency %s", ErrInvalidStock, s.lastDividend.Currency(), s.parValue.Currency())
	}
	switch s.kind {
	case Common:
		if hasFixed {
			return fmt.Errorf("%w: fixed dividend is only allowed on preferred stocks", ErrInvalidStock)
		}
	case Preferred:
		if !hasFixed {
			return fmt.Errorf("%w: fixed dividend is required on preferred stocks", ErrInvalidStock)
		}
		if s.fixedDividend.IsNegative() || s.fixedDividend.GreaterThan(hundred) {
			return fmt.Errorf("%w: fixed dividend must be within [0, 100], got %s", ErrInvalidStock, s.fixedDividend)
		}
	default:
		return fmt.Errorf("%w: unknown stock type %d", ErrInvalidStock, int(s.kind))
	}
	return nil
}

// Symbol returns the unique identifier of the stock.
func (s *Stock) Symbol() string { return s.symbol }

// Type returns whether the stock is common or preferred.
func (s *Stock) Type() StockType { return s.kind }

// LastDividend returns the last dividend paid per share.
func (s *Stock) LastDividend() Money { return s.lastDividend }

// FixedDividend returns the fixed dividend percentage and true for preferred stocks.
func (s *Stock) FixedDividend() (decimal.Decimal, bool) {
	return s.fixedDividend, s.kind == Preferred
}

// ParValue returns the nominal value of the stock.
func (s *Stock) ParValue() Money { return s.parValue }

// Currency returns the currency the stock is quoted in.
func (s *Stock) Currency() string { return cur(s.lastDividend, s.parValue) }

// DividendYield returns the dividend yield at the given market price.
//
// Common stocks yield lastDividend / price, preferred ones fixedDividend * parValue / price.
func (s *Stock) DividendYield(price Money) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: dividend yield of %s at price %s", ErrDivisionByZero, s.symbol, price.Decimal())
	}
	if !sameCurrency(price, s.parValue) {
		return decimal.Zero, fmt.Errorf("%w: price currency %s does not match %s currency %s", ErrInvalidPrice, price.Currency(), s.symbol, s.Currency())
	}
	if s.kind == Preferred {
		return s.fixedDividend.Mul(s.parValue.Decimal()).Div(price.Decimal()), nil
	}
	return s.lastDividend.Ratio(price), nil
}

// PERatio returns price / lastDividend.
//
// It fails with ErrUndefinedRatio when the stock paid no dividend.
func (s *Stock) PERatio(price Money) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: P/E ratio of %s needs a positive price, got %s", ErrInvalidPrice, s.symbol, price.Decimal())
	}
	if !sameCurrency(price, s.lastDividend) {
		return decimal.Zero, fmt.Errorf("%w: price currency %s does not match %s currency %s", ErrInvalidPrice, price.Currency(), s.symbol, s.Currency())
	}
	if s.lastDividend.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s paid no dividend", ErrUndefinedRatio, s.symbol)
	}
	return price.Ratio(s.lastDividend), nil
}
