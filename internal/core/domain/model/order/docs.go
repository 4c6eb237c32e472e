// Package order contains the Order aggregate and its lifecycle state
// machine. An order moves along a single happy path
// (pending -> assigned -> picked-up -> delivered) with cancellation from
// pending as the only alternate terminal edge. Every successful transition
// appends exactly one immutable entry to the order's status history.
//
// The aggregate exposes transition methods that validate the requested edge
// and mutate a fresh in-memory copy; persistence adapters apply the result
// behind a status-guarded update so that racing transitions on the same
// order resolve to exactly one winner.
package order
