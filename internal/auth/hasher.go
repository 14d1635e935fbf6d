package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstracts the hashing algorithm so services depend only on
// the hash/verify contract.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Verify reports whether password matches digest. A malformed digest is
	// a verification failure, not an error.
	Verify(password, digest string) bool
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
