package resettoken

import (
	"context"

	"github.com/google/uuid"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

// TTLSeconds bounds how long a reset link stays usable.
const TTLSeconds = 30 * 60

// KV is the slice of the cache this store needs.
type KV interface {
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	GetDel(ctx context.Context, key string) ([]byte, error)
}

// Store issues single-use password-reset tokens. Consume deletes the entry,
// so a link works exactly once.
type Store struct {
	kv KV
}

var _ domain.ResetTokens = (*Store)(nil)

func NewStore(kv KV) *Store { return &Store{kv: kv} }

func (s *Store) Issue(ctx context.Context, id domain.ProfileID) (string, error) {
	token := uuid.NewString()
	if err := s.kv.Set(ctx, domain.CacheKeyResetToken(token), []byte(id.String()), TTLSeconds); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Store) Consume(ctx context.Context, token string) (domain.ProfileID, error) {
	// atomic read-and-delete: of two concurrent consumers only one wins
	b, err := s.kv.GetDel(ctx, domain.CacheKeyResetToken(token))
	if err != nil {
		return uuid.Nil, err
	}
	if len(b) == 0 {
		return uuid.Nil, domain.ErrNotFound
	}
	id, err := uuid.Parse(string(b))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}
