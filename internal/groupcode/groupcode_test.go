package groupcode

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := Generate()
		if len(code) != Length {
			t.Fatalf("Generate() length = %d, want %d", len(code), Length)
		}
		for _, r := range code {
			if !strings.ContainsRune(alphabet, r) {
				t.Fatalf("Generate() produced %q with invalid character %q", code, r)
			}
		}
	}
}

func TestEnsureUnique(t *testing.T) {
	t.Run("first code free", func(t *testing.T) {
		calls := 0
		code, err := EnsureUnique(func(string) (bool, error) {
			calls++
			return false, nil
		})
		if err != nil {
			t.Fatalf("EnsureUnique error: %v", err)
		}
		if len(code) != Length {
			t.Errorf("code length = %d, want %d", len(code), Length)
		}
		if calls != 1 {
			t.Errorf("exists called %d times, want 1", calls)
		}
	})

	t.Run("retries on collision", func(t *testing.T) {
		calls := 0
		code, err := EnsureUnique(func(string) (bool, error) {
			calls++
			return calls < 4, nil
		})
		if err != nil {
			t.Fatalf("EnsureUnique error: %v", err)
		}
		if calls != 4 {
			t.Errorf("exists called %d times, want 4", calls)
		}
		if len(code) != Length {
			t.Errorf("code length = %d, want %d", len(code), Length)
		}
	})

	t.Run("timestamp fallback after exhaustion", func(t *testing.T) {
		calls := 0
		code, err := EnsureUnique(func(string) (bool, error) {
			calls++
			return true, nil
		})
		if err != nil {
			t.Fatalf("EnsureUnique error: %v", err)
		}
		if calls != maxAttempts {
			t.Errorf("exists called %d times, want %d", calls, maxAttempts)
		}
		if len(code) != Length+3 {
			t.Errorf("fallback code length = %d, want %d", len(code), Length+3)
		}
		for _, r := range code[Length:] {
			if r < '0' || r > '9' {
				t.Errorf("fallback suffix %q is not numeric", code[Length:])
			}
		}
	})

	t.Run("propagates store error", func(t *testing.T) {
		wantErr := errors.New("store down")
		if _, err := EnsureUnique(func(string) (bool, error) {
			return false, wantErr
		}); !errors.Is(err, wantErr) {
			t.Errorf("EnsureUnique error = %v, want %v", err, wantErr)
		}
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"Lowercase", "abc123", "ABC123"},
		{"Surrounding spaces", "  XY12AB  ", "XY12AB"},
		{"Already normalized", "QWERTY", "QWERTY"},
		{"Mixed", " q1W2e3 ", "Q1W2E3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.code); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{"Valid code", "AB12CD", true},
		{"All letters", "ABCDEF", true},
		{"All digits", "123456", true},
		{"Too short", "AB12C", false},
		{"Too long", "AB12CDE", false},
		{"Lowercase", "ab12cd", false},
		{"Punctuation", "AB-2CD", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.code); got != tt.expected {
				t.Errorf("Valid(%q) = %v, want %v", tt.code, got, tt.expected)
			}
		})
	}
}
