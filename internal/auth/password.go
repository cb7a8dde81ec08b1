// Package auth owns the two credential primitives: one-way password hashing
// and the stateless session token. Nothing here touches the database.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash of the password. bcrypt generates a
// random 16-byte salt per call and embeds it in the returned hash, so the
// hash string is the only thing that needs storing.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword recomputes the hash with the embedded salt and compares in
// constant time. A mismatch is (false, nil); an error is only returned for a
// malformed stored hash, which is an internal fault, not a login failure.
func VerifyPassword(password, storedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
