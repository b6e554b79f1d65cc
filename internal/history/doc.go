// Package history persists an optional ledger of launcher runs in SQLite.
//
// Each launch appends one row: when it ran, which interpreter was chosen, the
// forwarded arguments and how the child ended. The ledger is opt-in; a
// launcher without it keeps no state between invocations.
package history
