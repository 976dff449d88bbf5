package trip

import (
	"strings"
	"testing"
)

func TestGenerateJoinCode(t *testing.T) {
	// Codes are always 6 chars drawn from the ambiguity-free alphabet

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := generateJoinCode()
		if len(code) != joinCodeLength {
			t.Fatalf("wanted length %d, got %d (%q)", joinCodeLength, len(code), code)
		}
		for _, c := range code {
			if !strings.ContainsRune(joinCodeAlphabet, c) {
				t.Fatalf("code %q contains %q, outside the alphabet", code, c)
			}
		}
		seen[code] = true
	}

	// Not a strict guarantee, but 100 identical codes means the generator
	// is broken rather than unlucky.
	if len(seen) < 2 {
		t.Errorf("100 generated codes produced %d distinct values", len(seen))
	}
}
