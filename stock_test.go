package gbce

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewStock_Validation(t *testing.T) {
	two := dec("2")
	over := dec("100.5")
	negative := dec("-1")

	testCases := []struct {
		name      string
		symbol    string
		kind      StockType
		last      Money
		fixed     *decimal.Decimal
		par       Money
		expectErr bool
	}{
		{"Valid common", "POP", Common, GBP(8), nil, GBP(100), false},
		{"Valid common with no dividend", "TEA", Common, GBP(0), nil, GBP(100), false},
		{"Valid preferred", "GIN", Preferred, GBP(8), &two, GBP(100), false},
		{"Missing symbol", "", Common, GBP(8), nil, GBP(100), true},
		{"Negative dividend", "POP", Common, GBP(-1), nil, GBP(100), true},
		{"Zero par value", "POP", Common, GBP(8), nil, GBP(0), true},
		{"Negative par value", "POP", Common, GBP(8), nil, GBP(-100), true},
		{"Common with fixed dividend", "POP", Common, GBP(8), &two, GBP(100), true},
		{"Preferred without fixed dividend", "GIN", Preferred, GBP(8), nil, GBP(100), true},
		{"Preferred fixed dividend above 100", "GIN", Preferred, GBP(8), &over, GBP(100), true},
		{"Preferred negative fixed dividend", "GIN", Preferred, GBP(8), &negative, GBP(100), true},
		{"Currency mismatch", "POP", Common, M(8, "USD"), nil, GBP(100), true},
		{"Unknown type", "POP", StockType(7), GBP(8), nil, GBP(100), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStock(tc.symbol, tc.kind, tc.last, tc.fixed, tc.par)
			hasErr := err != nil
			if hasErr != tc.expectErr {
				t.Fatalf("NewStock() returned error: %v, want error: %v", err, tc.expectErr)
			}
			if hasErr && !errors.Is(err, ErrInvalidStock) {
				t.Errorf("NewStock() error = %v, want ErrInvalidStock", err)
			}
		})
	}
}

func TestStock_DividendYield(t *testing.T) {
	tea, _ := NewCommonStock("TEA", GBP(0), GBP(100))
	pop, _ := NewCommonStock("POP", GBP(8), GBP(100))
	gin, _ := NewPreferredStock("GIN", GBP(8), dec("2"), GBP(100))

	testCases := []struct {
		name  string
		stock *Stock
		price Money
		want  string
	}{
		{"Common with no dividend", tea, GBP(100), "0"},
		{"Common", pop, GBP(100), "0.08"},
		{"Common with a price without currency", pop, NO(200), "0.04"},
		{"Preferred", gin, GBP(100), "2"},
		{"Preferred at twice the par", gin, GBP(200), "1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.stock.DividendYield(tc.price)
			if err != nil {
				t.Fatalf("DividendYield(%s) unexpected error: %v", tc.price.Decimal(), err)
			}
			if !got.Equal(dec(tc.want)) {
				t.Errorf("DividendYield(%s) = %s, want %s", tc.price.Decimal(), got, tc.want)
			}
		})
	}
}

func TestStock_DividendYield_NonNegative(t *testing.T) {
	m := sampleMarket(t)
	for s := range m.Stocks() {
		for _, p := range []float64{0.01, 1, 99.5, 100, 1e6} {
			y, err := s.DividendYield(GBP(p))
			if err != nil {
				t.Fatalf("%s.DividendYield(%v) unexpected error: %v", s.Symbol(), p, err)
			}
			if y.IsNegative() {
				t.Errorf("%s.DividendYield(%v) = %s, want non-negative", s.Symbol(), p, y)
			}
		}
	}
}

func TestStock_DividendYield_Errors(t *testing.T) {
	pop, _ := NewCommonStock("POP", GBP(8), GBP(100))

	if _, err := pop.DividendYield(GBP(0)); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("DividendYield(0) error = %v, want ErrDivisionByZero", err)
	}
	if _, err := pop.DividendYield(GBP(-5)); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("DividendYield(-5) error = %v, want ErrDivisionByZero", err)
	}
	if _, err := pop.DividendYield(M(100, "USD")); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("DividendYield(100 USD) error = %v, want ErrInvalidPrice", err)
	}
}

func TestStock_PERatio(t *testing.T) {
	pop, _ := NewCommonStock("POP", GBP(8), GBP(100))
	tea, _ := NewCommonStock("TEA", GBP(0), GBP(100))

	got, err := pop.PERatio(GBP(120))
	if err != nil {
		t.Fatalf("PERatio(120) unexpected error: %v", err)
	}
	if want := dec("15"); !got.Equal(want) {
		t.Errorf("PERatio(120) = %s, want %s", got, want)
	}

	if _, err := tea.PERatio(GBP(110)); !errors.Is(err, ErrUndefinedRatio) {
		t.Errorf("PERatio() with no dividend error = %v, want ErrUndefinedRatio", err)
	}
	if _, err := pop.PERatio(GBP(0)); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("PERatio(0) error = %v, want ErrInvalidPrice", err)
	}
}

func TestParseStockType(t *testing.T) {
	for _, s := range []string{"common", "Common", "COMMON"} {
		if k, err := ParseStockType(s); err != nil || k != Common {
			t.Errorf("ParseStockType(%q) = %v, %v, want common", s, k, err)
		}
	}
	if k, err := ParseStockType("preferred"); err != nil || k != Preferred {
		t.Errorf("ParseStockType(preferred) = %v, %v, want preferred", k, err)
	}
	if _, err := ParseStockType("bond"); err == nil {
		t.Error("ParseStockType(bond) expected an error")
	}
}
