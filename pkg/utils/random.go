package utils

import (
	"math/rand"

	"github.com/google/uuid"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateShortKey generates a random key of fixed length over the
// 62-symbol alphanumeric alphabet. math/rand is self-seeding and safe
// under concurrent shorten requests. Uniqueness is not guaranteed here;
// the unique index on links.short_key is the source of truth.
func GenerateShortKey(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// GenerateRequestID generates a UUID string used to tag request logs
func GenerateRequestID() string {
	return uuid.NewString()
}
