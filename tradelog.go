package gbce

import (
	"iter"
	"slices"
	"sort"
	"time"
)

// TradeLog stores the trades of a single stock in chronological order.
//
// Trades are only ever appended, a trade older than the latest one is inserted
// after every trade recorded at the same or an earlier time.
type TradeLog struct {
	trades []Trade
}

// Append adds a trade to the log.
func (l *TradeLog) Append(t Trade) *TradeLog {
	i := sort.Search(len(l.trades), func(i int) bool { return l.trades[i].Time.After(t.Time) })
	l.trades = slices.Insert(l.trades, i, t)
	return l
}

// Len returns the number of trades in the log.
func (l *TradeLog) Len() int { return len(l.trades) }

// Latest returns the most recent trade, or false if the log is empty.
func (l *TradeLog) Latest() (Trade, bool) {
	if len(l.trades) == 0 {
		return Trade{}, false
	}
	return l.trades[len(l.trades)-1], true
}

// Values returns an iterator over all trades, in chronological order.
func (l *TradeLog) Values() iter.Seq[Trade] {
	return func(yield func(Trade) bool) {
		for _, t := range l.trades {
			if !yield(t) {
				return
			}
		}
	}
}

// Between returns a copy of the trades with from <= Time <= to.
func (l *TradeLog) Between(from, to time.Time) []Trade {
	lo := sort.Search(len(l.trades), func(i int) bool { return !l.trades[i].Time.Before(from) })
	hi := sort.Search(len(l.trades), func(i int) bool { return l.trades[i].Time.After(to) })
	if lo >= hi {
		return nil
	}
	return slices.Clone(l.trades[lo:hi])
}

// VWAP is a volume weighted average price.
//
// The zero value means that no trade was available to compute it.
type VWAP struct {
	Price  Money    `json:"price"`
	Volume Quantity `json:"volume"`
	Trades int      `json:"trades"`
}

// Available reports whether at least one trade contributed to the price.
func (v VWAP) Available() bool { return v.Trades > 0 }

// VolumeWeightedPrice computes Σ(price×quantity) / Σ(quantity) over trades.
func VolumeWeightedPrice(trades []Trade) VWAP {
	var value Money
	var volume Quantity
	for _, t := range trades {
		value = value.Add(t.Value())
		volume = volume.Add(t.Quantity)
	}
	if volume.IsZero() {
		return VWAP{}
	}
	return VWAP{Price: value.Div(volume), Volume: volume, Trades: len(trades)}
}
