package domain

import (
	"context"
	"time"
)

type Token = string

type TokenClaims struct {
	JTI       string // unique token id
	ProfileID ProfileID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encodedHash string) (bool, error)
}

type TokenManager interface {
	Issue(ctx context.Context, id ProfileID, email string) (Token, TokenClaims, error)
	Parse(ctx context.Context, t Token) (TokenClaims, error)
}

// Revocation of signed-out sessions (Redis-backed).
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Single-use password-reset tokens (Redis-backed, TTL-bounded).
type ResetTokens interface {
	Issue(ctx context.Context, id ProfileID) (string, error)
	Consume(ctx context.Context, token string) (ProfileID, error)
}

// Mailer delivers the password-reset link. The default implementation only
// logs; SMTP wiring is a deployment concern.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}
