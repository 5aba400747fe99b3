package renderer

import (
	"iter"

	"github.com/etnz/gbce"
)

// StocksMarkdown renders the list of listed stocks.
func StocksMarkdown(stocks iter.Seq[*gbce.Stock]) string {
	r := newRenderer()
	r.Printf("# Stocks\n\n")
	r.Printf("| Symbol | Type | Last Dividend | Fixed Dividend | Par Value |\n")
	r.Printf("|:---|:---|---:|---:|---:|\n")
	for s := range stocks {
		fixed := "-"
		if f, ok := s.FixedDividend(); ok {
			fixed = f.String() + "%"
		}
		r.Printf("| %s | %s | %s | %s | %s |\n", s.Symbol(), s.Type(), s.LastDividend(), fixed, s.ParValue())
	}
	return r.String()
}
