// Package yieldbook keeps a personal record of wealth-management products
// and of the net value queries made against them.
//
// The core functionalities include:
//   - Product Store: the owned positions, their purchase terms and their
//     redemption lifecycle.
//   - Record Store: an append-only log of net value queries, each one
//     snapshotting the annualized yield and the current amount at the time of
//     the query.
//   - Yield Calculator: a stateless function deriving the holding period,
//     the annualized yield and the current amount from a purchase and a query.
//   - Snapshot: the import/export format gathering both stores in a single
//     human-readable JSON document.
//   - Book: both stores bound to a [Storage], saving every mutation before it
//     returns.
//
// This package serves as the foundational logic for the `yb` command-line
// tool.
package yieldbook
