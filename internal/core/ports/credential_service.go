package ports

import (
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/user"
)

// Claims is the identity carried by a verified credential.
type Claims struct {
	UserID kernel.UUID
	Role   user.Role
}

// CredentialService verifies and issues opaque credential tokens. The core
// never stores or compares raw passwords; token mechanics are owned by the
// adapter.
type CredentialService interface {
	// Verify validates the token and extracts the identity it asserts.
	// Returns AuthError for a malformed, forged, or expired token.
	Verify(token string) (Claims, error)

	// Issue mints a token asserting the given identity.
	Issue(userID kernel.UUID, role user.Role) (string, error)
}
