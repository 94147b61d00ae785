package gglive

import (
	"strings"
	"testing"
)

func TestRandomToken(t *testing.T) {
	seen := make(map[string]bool)
	for _, n := range []int{1, 8, 64, 300} {
		tok, err := RandomToken(n)
		if err != nil {
			t.Fatalf("RandomToken(%d) = %v", n, err)
		}
		if len(tok) != n {
			t.Errorf("len(RandomToken(%d)) = %d", n, len(tok))
		}
		if strings.Trim(tok, tokenAlphabet) != "" {
			t.Errorf("RandomToken(%d) = %q has characters outside the alphabet", n, tok)
		}
		seen[tok] = true
	}
	if a, _ := RandomToken(32); seen[a] {
		t.Error("RandomToken repeated a token")
	}
	for _, n := range []int{0, -1} {
		if _, err := RandomToken(n); err == nil {
			t.Errorf("RandomToken(%d) = nil error", n)
		}
	}
}
