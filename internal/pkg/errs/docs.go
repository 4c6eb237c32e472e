// Package errs provides the standardized error taxonomy for the delivery hub.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package defines one sentinel error per failure kind together with a
// typed error carrying the details of the failure:
//   - ObjectNotFoundError: a requested entity does not exist
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed or unacceptable
//   - ValueIsOutOfRangeError: a numeric value is outside its bounds
//   - ForbiddenError: the actor is not allowed to perform the action
//   - InvalidTransitionError: the order state machine rejects the edge
//   - ConflictError: a concurrent mutation invalidated the caller's state
//   - AuthError: the presented credential is missing, invalid, or expired
//   - TimeoutError: the operation outlived its deadline
//
// Each kind follows the same pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() so errors.Is matches the sentinel
//
// Callers classify failures with errors.Is against the sentinels; transport
// adapters map kinds to wire statuses without inspecting messages. Internal
// collaborator details travel in the Cause and are never rendered to callers
// by the adapters.
package errs
