// Package user contains the User entity referenced by orders and the Role
// enum used by the authorization policy. The identity store itself (password
// hashing, registration) lives in an external service; this package models
// only what the order lifecycle needs: the role, the active flag, and the
// delivery statistics maintained on completed deliveries.
package user
