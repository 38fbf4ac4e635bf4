// Package nova2k converts NovaDAX account statements into the Koinly
// universal CSV import format.
//
// A statement reaches the package in one of two shapes:
//   - Tabular: the CSV export of the exchange, five columns
//     (Date, Type, Currency, Value, Status) after a header row.
//   - Table rows: the raw, per page rows produced by a table extractor run on
//     the printed PDF statement (see the pdftable and gemini packages). Text
//     wrapping splits a single transaction across several physical lines, so
//     these rows go through a [Reconstructor] first.
//
// The conversion itself is a stateful fold over logical rows:
//   - Each row is classified into a [LedgerEntry] by an ordered table of
//     [Rule] values (see [DefaultRules]).
//   - The two legs of a "Convert" transaction, and the "Taxa de Convert" fee
//     row recorded just before them, are paired into one entry by
//     [Pairing.Step].
//
// Amounts are never computed nor rounded: they are propagated as the exact
// decimal text found in the statement, only the separators are rewritten.
//
// This package serves as the foundational logic for the `nova2k`
// command-line tool.
package nova2k
