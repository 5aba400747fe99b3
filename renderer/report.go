package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/gbce"
)

// ReportMarkdown renders the full market report.
func ReportMarkdown(report *gbce.Report) string {
	r := newRenderer()
	r.Printf("# GBCE Report on %s\n\n", report.Time.Format("2006-01-02 15:04:05 MST"))
	r.Printf("Prices are the volume weighted stock price over the last %s, or the quoted price.\n\n", report.Window)

	r.Printf("| Symbol | Type | Last Dividend | Fixed Dividend | Par Value | Price | Source | Dividend Yield | P/E Ratio |\n")
	r.Printf("|:---|:---|---:|---:|---:|---:|:---|---:|---:|\n")
	for _, s := range report.Stocks {
		fixed := "-"
		if s.FixedDividend.Valid {
			fixed = s.FixedDividend.Decimal.String() + "%"
		}
		r.Printf("| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			s.Symbol,
			s.Type,
			s.LastDividend,
			fixed,
			s.ParValue,
			price(s.Price),
			s.PriceSource,
			ratio(s.DividendYield),
			ratio(s.PERatio),
		)
	}
	r.Printf("\n")

	ConditionalBlock(r, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Volume\n\n")
		fmt.Fprintf(w, "| Symbol | Trades | Volume |\n")
		fmt.Fprintf(w, "|:---|---:|---:|\n")
		traded := false
		for _, s := range report.Stocks {
			if s.Trades == 0 {
				continue
			}
			traded = true
			fmt.Fprintf(w, "| %s | %d | %s |\n", s.Symbol, s.Trades, s.Volume)
		}
		fmt.Fprintf(w, "\n")
		return traded
	})

	r.Printf("## Indexes\n\n")
	r.Printf("* **GBCE All Share Index**: %s\n", price(report.Index))
	r.Printf("* **Trade Price Index**: %s\n", price(report.TradePriceIndex))
	return r.String()
}
