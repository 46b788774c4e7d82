package subscription

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// TokenLength is the fixed length of confirmation tokens.
const TokenLength = 25

// tokenAlphabet is the alphanumeric alphabet confirmation tokens draw from.
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewToken generates a fresh random confirmation token: TokenLength characters
// drawn uniformly from tokenAlphabet using crypto/rand.
func NewToken() (string, error) {
	alphabetSize := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, TokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate confirmation token: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
