package ports

import (
	"context"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user records.
// Users are created by an external identity flow; the core reads them for
// authorization and assignment checks and writes only delivery statistics.
type UserRepository interface {
	// Get retrieves a user by its unique identifier.
	// Returns ObjectNotFoundError if no such user exists.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, aggregate *user.User) error
}
