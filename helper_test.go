package gbce

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// GBP is a helper for test to create pound money from const
func GBP(v float64) Money { return M(v, "GBP") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// dec is a helper for test to create a decimal from a string const.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// t0 is the reference time of the tests.
var t0 = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

// sampleMarket returns the GBCE sample market, with no trades.
func sampleMarket(t *testing.T) *Market {
	t.Helper()
	m := NewMarket("GBP")
	mustAdd := func(s *Stock, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("cannot create stock: %v", err)
		}
		if err := m.Add(s); err != nil {
			t.Fatalf("cannot add stock: %v", err)
		}
	}
	mustAdd(NewCommonStock("TEA", GBP(0), GBP(100)))
	mustAdd(NewCommonStock("POP", GBP(8), GBP(100)))
	mustAdd(NewCommonStock("ALE", GBP(23), GBP(60)))
	mustAdd(NewPreferredStock("GIN", GBP(8), dec("2"), GBP(100)))
	mustAdd(NewCommonStock("JOE", GBP(13), GBP(250)))
	return m
}
