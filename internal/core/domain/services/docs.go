// Package services provides domain services that operate across delivery
// aggregates. It implements logic that does not naturally belong to a
// single aggregate root.
//
// The package includes:
//   - ViewFilter: derives the per-role dashboard subsets (active, history,
//     available pool, unpaid) from a delivery list
//
// The SQL query handlers mirror the ViewFilter semantics server-side; this
// package is the authoritative definition of those sets.
package services
