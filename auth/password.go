package auth

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades login latency for resistance against offline brute force.
const bcryptCost = 12

// HashPassword returns the bcrypt hash of the given plaintext password. The
// salt is embedded in the returned hash, so hashing the same password twice
// yields different outputs.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", errors.Wrap(err, "fail to hash password")
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt hash. A mismatch is a normal outcome, not an error.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
