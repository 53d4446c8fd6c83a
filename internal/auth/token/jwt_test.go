package token

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueParseRoundTrip(t *testing.T) {
	m := New("test-secret", "meuescritoriodigital", time.Hour)
	id := uuid.New()

	raw, issued, err := m.Issue(context.Background(), id, "ana@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issued.JTI == "" {
		t.Fatal("empty jti")
	}

	parsed, err := m.Parse(context.Background(), raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.ProfileID != id {
		t.Fatalf("profile id = %s, want %s", parsed.ProfileID, id)
	}
	if parsed.Email != "ana@example.com" {
		t.Fatalf("email = %q", parsed.Email)
	}
	if parsed.JTI != issued.JTI {
		t.Fatalf("jti mismatch: %q vs %q", parsed.JTI, issued.JTI)
	}
	if !parsed.ExpiresAt.After(time.Now()) {
		t.Fatal("token already expired")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := New("secret-a", "iss", time.Hour)
	raw, _, err := m.Issue(context.Background(), uuid.New(), "x@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := New("secret-b", "iss", time.Hour)
	if _, err := other.Parse(context.Background(), raw); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	m := New("secret", "iss", -time.Minute)
	raw, _, err := m.Issue(context.Background(), uuid.New(), "x@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Parse(context.Background(), raw); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	m := New("secret", "iss", time.Hour)
	if _, err := m.Parse(context.Background(), "not.a.token"); err == nil {
		t.Fatal("garbage accepted")
	}
}
