package game

import (
	"math/rand/v2"
	"strings"
)

// Lobby codes are drawn from uppercase letters and digits so they survive being
// read aloud and typed on a phone.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultCodeLength is used when the configured length is missing or invalid.
const DefaultCodeLength = 6

// NewCode generates a lobby code of the given length, drawing each character
// uniformly from A-Z0-9.
func NewCode(length int) string {
	if length <= 0 {
		length = DefaultCodeLength
	}

	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}

	return b.String()
}

// NormalizeCode uppercases a user-entered code; codes are displayed and entered
// case-insensitively.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
