package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Strict UUID shape: malformed ids are treated as not-found before any query
// is issued, never propagated as a storage error.
var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func ParseID(s string) (uuid.UUID, bool) {
	if !uuidRe.MatchString(strings.ToLower(s)) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ValidName: required, at least 3 characters after trimming.
func ValidName(s string) bool {
	return len(strings.TrimSpace(s)) >= 3
}

// ValidPassword: minimum 6 characters.
func ValidPassword(s string) bool {
	return len(s) >= 6
}
