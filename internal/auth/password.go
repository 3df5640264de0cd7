package auth

import "golang.org/x/crypto/bcrypt"

// defaultHashCost is the floor for out-of-range costs; cost 12 keeps offline
// brute force expensive.
const defaultHashCost = 12

// HashPassword hashes a plaintext password with the configured cost.
// bcrypt salts every call, so equal inputs produce distinct digests.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultHashCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword verifies a password against its stored digest. Malformed
// digests and mismatches both report false; the caller cannot tell them apart.
func CheckPassword(digest, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
