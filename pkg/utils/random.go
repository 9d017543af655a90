package utils

import (
	"math/rand"

	"github.com/google/uuid"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomString generates a random alphanumeric string of the requested length.
// It uses the package-level math/rand source, which is locked internally, so
// concurrent request handlers can call it directly.
func RandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// NewVisitorID generates a UUID string used as the long-lived visitor correlation token
func NewVisitorID() string {
	return uuid.NewString()
}
