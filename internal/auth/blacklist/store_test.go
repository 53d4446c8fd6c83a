package blacklist

import (
	"context"
	"testing"
	"time"
)

type memKV struct {
	data map[string][]byte
	ttls map[string]int
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}, ttls: map[string]int{}}
}

func (m *memKV) SetNX(_ context.Context, key string, val []byte, ttlSeconds int) (bool, error) {
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = val
	m.ttls[key] = ttlSeconds
	return true, nil
}

func (m *memKV) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func TestRevokeThenIsRevoked(t *testing.T) {
	s := NewStore(newMemKV())
	ctx := context.Background()

	revoked, err := s.IsRevoked(ctx, "jti-1")
	if err != nil || revoked {
		t.Fatalf("fresh jti revoked=%v err=%v", revoked, err)
	}

	if err := s.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	revoked, err = s.IsRevoked(ctx, "jti-1")
	if err != nil || !revoked {
		t.Fatalf("revoked=%v err=%v, want true", revoked, err)
	}
}

func TestRevokeExpiredTokenStillGuards(t *testing.T) {
	kv := newMemKV()
	s := NewStore(kv)

	// exp in the past: a minimum TTL still lands so replay within the
	// clock-skew window is caught
	if err := s.Revoke(context.Background(), "jti-2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	for _, ttl := range kv.ttls {
		if ttl <= 0 {
			t.Fatalf("non-positive ttl stored: %d", ttl)
		}
	}
}

func TestRevokeSubSecondExpiryStoresPositiveTTL(t *testing.T) {
	kv := newMemKV()
	s := NewStore(kv)

	// a token about to expire must not produce ttl=0 (redis: never expires)
	if err := s.Revoke(context.Background(), "jti-3", time.Now().Add(500*time.Millisecond)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	for _, ttl := range kv.ttls {
		if ttl < 1 {
			t.Fatalf("ttl = %d, want >= 1", ttl)
		}
	}
}
