// Package investmap provides the types and functions behind the investmap
// portfolio tracker client. The asset records themselves live in a remote
// service; this package owns what the client computes from them.
//
// The core functionalities include:
//   - Asset Records: one purchase or sale entry (stock tag, exchange, price,
//     quantity) with nullable market data (name, current price) that stays
//     "unknown" until the service refreshes it.
//   - Aggregation: stateless functions deriving the investment and
//     profit/loss of each record, and the portfolio totals (invested capital,
//     profit/loss, portfolio value, number of distinct assets).
//   - Selection: a bounded set of records picked for a batch price refresh.
//   - Refresh: turns a selection into one price refresh request and reloads
//     the records once it succeeds.
//   - Table: the single owner of the in-memory record list and the selection,
//     rebuilt wholesale from the service after every change.
//
// This package serves as the foundational logic for the `investmap`
// command-line tool. Arithmetic is exact (decimal based) and never lets an
// unparseable value turn a total into garbage: anything that is not a finite
// number counts as zero.
package investmap
