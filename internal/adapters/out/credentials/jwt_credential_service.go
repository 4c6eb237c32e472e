// Package credentials implements the credential port with HS256 JWTs.
// The token carries the user id and role the original web clients expect.
package credentials

import (
	"errors"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/user"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/pkg/errs"

	jwt "github.com/golang-jwt/jwt/v5"
)

// JWTCredentialService signs and verifies bearer tokens with a shared
// secret.
type JWTCredentialService struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewJWTCredentialService creates the service. The secret must be
// non-empty; ttl bounds how long issued tokens stay valid.
func NewJWTCredentialService(secret string, ttl time.Duration) (*JWTCredentialService, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("secret")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidError("ttl")
	}
	return &JWTCredentialService{secret: []byte(secret), tokenTTL: ttl}, nil
}

type tokenClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Verify implements ports.CredentialService.
func (s *JWTCredentialService) Verify(token string) (ports.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ports.Claims{}, errs.NewAuthError("invalid token")
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || claims.UserID == "" || claims.Role == "" {
		return ports.Claims{}, errs.NewAuthError("invalid claims")
	}

	userID, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return ports.Claims{}, errs.NewAuthError("invalid claims")
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return ports.Claims{}, errs.NewAuthError("invalid claims")
	}

	return ports.Claims{UserID: userID, Role: role}, nil
}

// Issue implements ports.CredentialService.
func (s *JWTCredentialService) Issue(userID kernel.UUID, role user.Role) (string, error) {
	if err := userID.Validate(); err != nil {
		return "", err
	}
	if err := role.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: userID.String(),
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errs.NewAuthErrorWithCause("could not sign token", err)
	}

	return signed, nil
}
