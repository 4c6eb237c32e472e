// Package kernel contains shared value objects used across domain aggregates:
// the UUID identifier wrapper and the GeoPoint coordinate pair with its
// distance and delivery-time helpers.
package kernel
