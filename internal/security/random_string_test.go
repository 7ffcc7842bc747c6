package security

import (
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		length      int
		alphabet    string
		expectError bool
	}{
		{name: "negative length", length: -1, alphabet: "abc", expectError: true},
		{name: "empty alphabet", length: 8, alphabet: "", expectError: true},
		{name: "zero length", length: 0, alphabet: "abc", expectError: false},
		{name: "single char alphabet", length: 5, alphabet: "x", expectError: false},
		{name: "normal generation", length: 12, alphabet: "ABCDEFGHJKLMNPQRSTUVWXYZ23456789", expectError: false},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			value, err := RandomString(testCase.length, testCase.alphabet)
			if testCase.expectError {
				if err == nil {
					t.Fatalf("expected error, got value %q", value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(value) != testCase.length {
				t.Fatalf("expected length %d, got %d", testCase.length, len(value))
			}
			for _, character := range value {
				if !strings.ContainsRune(testCase.alphabet, character) {
					t.Fatalf("character %q not in alphabet %q", character, testCase.alphabet)
				}
			}
		})
	}
}
