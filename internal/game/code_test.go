package game

import (
	"strings"
	"testing"
)

func TestNewCode(t *testing.T) {
	t.Run("Length And Alphabet", func(t *testing.T) {
		for range 100 {
			code := NewCode(6)
			if len(code) != 6 {
				t.Fatalf("expected 6 characters, got %q", code)
			}
			for _, c := range code {
				if !strings.ContainsRune(codeAlphabet, c) {
					t.Fatalf("unexpected character %q in code %q", c, code)
				}
			}
		}
	})

	t.Run("Invalid Length Falls Back To Default", func(t *testing.T) {
		if code := NewCode(0); len(code) != DefaultCodeLength {
			t.Errorf("expected default length %d, got %q", DefaultCodeLength, code)
		}
	})
}

func TestNormalizeCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc123", "ABC123"},
		{"  aBc123  ", "ABC123"},
		{"ABC123", "ABC123"},
	}

	for _, tc := range cases {
		if got := NormalizeCode(tc.in); got != tc.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
