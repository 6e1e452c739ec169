package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters must stay bit-compatible with hashes already in the
// store: HMAC-SHA256, 10,000 iterations, 32-byte salt, 32-byte key, salt
// and hash stored as separate base64 strings.
const (
	pbkdf2Iterations = 10000
	saltLength       = 32
	keyLength        = 32
)

// HashPassword derives a new salt+hash pair for a plaintext password.
func HashPassword(password string) (hash, salt string, err error) {
	saltBytes := make([]byte, saltLength)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", err
	}

	key := pbkdf2.Key([]byte(password), saltBytes, pbkdf2Iterations, keyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(key), base64.StdEncoding.EncodeToString(saltBytes), nil
}

// VerifyPassword recomputes the hash with the stored salt and compares.
// Comparison is a plain string equality, matching the stored-hash contract.
func VerifyPassword(password, storedHash, storedSalt string) bool {
	saltBytes, err := base64.StdEncoding.DecodeString(storedSalt)
	if err != nil {
		return false
	}
	key := pbkdf2.Key([]byte(password), saltBytes, pbkdf2Iterations, keyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(key) == storedHash
}
