// Package groupcode generates the short shareable codes used to join a
// group. Codes are human-typeable invitations, not security tokens.
package groupcode

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Length of a regular code. The collision fallback produces Length+3.
	Length = 6

	maxAttempts = 10
)

// Generate returns a Length-character code drawn uniformly from [A-Z0-9].
func Generate() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return b.String()
}

// EnsureUnique generates codes until exists reports an unused one, giving up
// after maxAttempts and falling back to a fresh code with the last three
// digits of the current unix-millisecond clock appended. The fallback accepts
// a vanishingly rare collision rather than looping forever.
func EnsureUnique(exists func(code string) (bool, error)) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code := Generate()
		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	millis := time.Now().UnixMilli()
	return fmt.Sprintf("%s%03d", Generate(), millis%1000), nil
}

// Normalize trims and uppercases a user-supplied code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether a normalized code has the shareable format.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(alphabet, rune(code[i])) {
			return false
		}
	}
	return true
}
