package blacklist

import (
	"context"
	"time"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

// KV is the slice of the cache this store needs.
type KV interface {
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Store marks signed-out session tokens as revoked until their natural
// expiry; entries evaporate with the TTL.
type Store struct {
	kv KV
}

var _ domain.TokenBlacklist = (*Store)(nil)

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) Revoke(ctx context.Context, jti string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		ttl = time.Minute // guard against exp already in the past
	}
	secs := int(ttl.Seconds())
	if secs < 1 {
		// sub-second ttl truncates to 0, which redis reads as "no expiry"
		secs = 1
	}
	_, err := s.kv.SetNX(ctx, domain.CacheKeyTokenJTI(jti), []byte("1"), secs)
	return err
}

func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.kv.Exists(ctx, domain.CacheKeyTokenJTI(jti))
}
