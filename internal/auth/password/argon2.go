package password

import (
	"errors"

	"github.com/alexedwards/argon2id"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

type Hasher struct {
	params *argon2id.Params
}

var _ domain.PasswordHasher = (*Hasher)(nil)

func NewDefault() *Hasher {
	return &Hasher{params: argon2id.DefaultParams}
}

func New(p *argon2id.Params) *Hasher { return &Hasher{params: p} }

// Hash returns the encoded $argon2id$v=19$m=... string stored in profiles.
func (h *Hasher) Hash(plain string) (string, error) {
	if h == nil || h.params == nil {
		return "", errors.New("argon2id params not set")
	}
	return argon2id.CreateHash(plain, h.params)
}

func (h *Hasher) Verify(plain, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plain, encodedHash)
}
