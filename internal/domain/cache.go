package domain

import "context"

// Simple k/v interface. Implementation: Redis. Backs token revocation and
// password-reset tokens; never backs tenant resolution (re-derived per call).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetDel atomically reads and removes the key. Backs single-use tokens.
	GetDel(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, keys ...string) error
	Ping(context.Context) error
	Close()
}

func CacheKeyTokenJTI(jti string) string     { return "jti:" + jti }
func CacheKeyResetToken(token string) string { return "pwreset:" + token }
