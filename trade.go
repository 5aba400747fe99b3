package gbce

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Side is the buy/sell indicator of a trade.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// ParseSide parses "buy" or "sell", case insensitive.
func ParseSide(s string) (Side, error) {
	switch side := Side(strings.ToLower(s)); side {
	case Buy, Sell:
		return side, nil
	default:
		return "", fmt.Errorf("unknown trade side: %q", s)
	}
}

// Trade is a single executed trade of a stock.
type Trade struct {
	ID       uuid.UUID `json:"id"`
	Symbol   string    `json:"symbol"`
	Time     time.Time `json:"time"`
	Quantity Quantity  `json:"quantity"` // Quantity is the number of shares traded.
	Side     Side      `json:"side"`
	Price    Money     `json:"price"` // Price is the price of one share.
}

// NewTrade creates a new Trade with a fresh identifier. It is not validated.
func NewTrade(symbol string, quantity Quantity, side Side, price Money, on time.Time) Trade {
	return Trade{
		ID:       uuid.New(),
		Symbol:   symbol,
		Time:     on,
		Quantity: quantity,
		Side:     side,
		Price:    price,
	}
}

// Value returns the traded amount, price times quantity.
func (t Trade) Value() Money { return t.Price.Mul(t.Quantity) }

// Validate checks the trade fields. Quantity must be a positive whole number of
// shares and price must be positive.
func (t Trade) Validate() error {
	if t.Symbol == "" {
		return fmt.Errorf("%w: stock symbol is missing", ErrInvalidTrade)
	}
	if t.Time.IsZero() {
		return fmt.Errorf("%w: %s trade has no timestamp", ErrInvalidTrade, t.Symbol)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%w: %s trade quantity must be positive, got %s", ErrInvalidTrade, t.Symbol, t.Quantity)
	}
	if !t.Quantity.IsInteger() {
		return fmt.Errorf("%w: %s trade quantity must be a whole number of shares, got %s", ErrInvalidTrade, t.Symbol, t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("%w: %s trade price must be positive, got %s", ErrInvalidTrade, t.Symbol, t.Price.Decimal())
	}
	if _, err := ParseSide(string(t.Side)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTrade, err)
	}
	return nil
}
