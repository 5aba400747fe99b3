// Package renderer formats gbce reports as markdown.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/gbce"
	"github.com/shopspring/decimal"
)

// RatioPlaces is the number of decimal places used to print ratios.
const RatioPlaces = 4

// mdRenderer accumulates markdown.
type mdRenderer struct {
	*strings.Builder
}

func newRenderer() *mdRenderer { return &mdRenderer{Builder: &strings.Builder{}} }

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *mdRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// ratio prints a nullable ratio, "n/a" when undefined.
func ratio(d decimal.NullDecimal) string {
	if !d.Valid {
		return "n/a"
	}
	return d.Decimal.StringFixed(RatioPlaces)
}

// price prints an optional price, "-" when missing.
func price(m *gbce.Money) string {
	if m == nil {
		return "-"
	}
	return m.String()
}

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	var b strings.Builder
	if block(&b) {
		io.WriteString(w, b.String())
	}
}
