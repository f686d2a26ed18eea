package identity

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for password hashing.
const (
	argonTime    uint32 = 2
	argonMemory  uint32 = 32 * 1024 // 32 MB
	argonThreads uint8  = 2
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

func newSalt() ([]byte, error) {
	b := make([]byte, saltLen)
	_, err := rand.Read(b)
	return b, err
}

func hashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

func verifyPassword(password string, salt, expected []byte) bool {
	got := hashPassword(password, salt)
	return subtle.ConstantTimeCompare(got, expected) == 1
}
