package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCode returns a random code of the given length drawn from an unambiguous alphabet.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}

	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// GenerateOrderNumber builds "<INITIALS>-YYYYMMDD_HHMMSS" from the buyer's name.
// Two orders placed by buyers with the same initials in the same second collide.
func GenerateOrderNumber(name string, now time.Time) string {
	initials := make([]rune, 0, 2)
	for _, r := range strings.ToUpper(name) {
		if !unicode.IsLetter(r) {
			continue
		}
		initials = append(initials, r)
		if len(initials) == 2 {
			break
		}
	}
	for len(initials) < 2 {
		initials = append(initials, 'X')
	}
	return string(initials) + "-" + now.Format("20060102_150405")
}
