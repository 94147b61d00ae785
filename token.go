package gglive

import (
	"crypto/rand"
	"fmt"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomToken returns n random alphanumeric characters for use as an
// access token.
func RandomToken(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("gglive: token length %d must be positive", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("gglive: token: %w", err)
	}
	// 256 % 62 != 0; reject the biased tail.
	const limit = 256 - 256%len(tokenAlphabet)
	out := make([]byte, 0, n)
	for len(out) < n {
		for _, b := range buf {
			if int(b) < limit && len(out) < n {
				out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			}
		}
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("gglive: token: %w", err)
		}
	}
	return string(out), nil
}
