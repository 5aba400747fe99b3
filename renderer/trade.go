package renderer

import (
	"time"

	"github.com/etnz/gbce"
)

// TradesMarkdown renders trades, in the order given.
func TradesMarkdown(trades []gbce.Trade) string {
	r := newRenderer()
	r.Printf("| Time | Symbol | Side | Quantity | Price | Value |\n")
	r.Printf("|:---|:---|:---|---:|---:|---:|\n")
	for _, t := range trades {
		r.Printf("| %s | %s | %s | %s | %s | %s |\n",
			t.Time.Format(time.DateTime), t.Symbol, t.Side, t.Quantity, t.Price, t.Value())
	}
	return r.String()
}

// VWAPMarkdown renders the volume weighted price of symbol over the window ending at now.
func VWAPMarkdown(symbol string, now time.Time, window time.Duration, v gbce.VWAP) string {
	r := newRenderer()
	r.Printf("# %s Volume Weighted Stock Price\n\n", symbol)
	r.Printf("From %s to %s.\n\n", now.Add(-window).Format(time.DateTime), now.Format(time.DateTime))
	if !v.Available() {
		r.Printf("No trade within the last %s.\n", window)
		return r.String()
	}
	r.Printf("* **Price**: %s\n", v.Price)
	r.Printf("* **Volume**: %s\n", v.Volume)
	r.Printf("* **Trades**: %d\n", v.Trades)
	return r.String()
}
