package testutil

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

const secretLen = 32

// RandomSecret returns a caller secret long enough for the server config.
func RandomSecret() string {
	return gofakeit.Password(true, true, true, false, false, secretLen)
}

// RandomSuffix returns n lowercase letters, used to keep docker resource
// names unique between runs.
func RandomSuffix(n uint) string {
	return strings.ToLower(gofakeit.LetterN(n))
}
