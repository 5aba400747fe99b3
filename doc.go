// Package gbce computes the metrics of the Global Beverage Corporation
// Exchange (GBCE) from an in-memory record of trades.
//
// The core functionalities include:
//   - Stocks: common and preferred stocks, their dividend yield and P/E ratio
//     at a given market price.
//   - Trade Recording: an append-only, chronological log of trades per stock,
//     and the volume weighted stock price (VWAP) over a trailing window.
//   - Market Index: the GBCE All Share Index, the geometric mean of one
//     representative price per stock.
//   - Scenarios: setting up a market from a human-readable YAML document.
//
// All amounts are exact decimals. A Market is the context of a simulation run,
// it is created by the caller and passed around explicitly.
//
// This package serves as the foundational logic for the `gbce` command-line
// tool.
package gbce
