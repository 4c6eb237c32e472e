// Package services holds domain services: logic that spans aggregates but
// carries no state of its own. The access policy lives here because it
// reasons about an actor (a User projection) and an Order together.
package services
