package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the storable bcrypt hash for a signup password. The
// cost comes from configuration; tests pass bcrypt.MinCost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a login attempt against the stored hash. Any
// non-nil error means mismatch; callers collapse it into the generic
// login failure.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
