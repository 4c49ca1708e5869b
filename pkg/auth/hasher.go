package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher produces and verifies password hashes.
type PasswordHasher interface {
	// Hash returns an opaque string encoding algorithm, salt and cost.
	Hash(password string) (string, error)
	// Verify reports whether password matches hash using a
	// constant-time comparison.
	Verify(password, hash string) bool
}

// BcryptHasher implements PasswordHasher with a tunable cost factor.
// bcrypt generates a fresh random salt per call, so two hashes of the
// same password never compare equal.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher clamps cost into the range bcrypt accepts.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
