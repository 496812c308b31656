package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// NewUID derives the public slug for a project: the slugified name plus
// a short random suffix, so renamed or same-named projects don't clash.
// Format: "my-project-4821"
func NewUID(name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "project"
	}

	n, err := randInt(1000, 9999)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%04d", base, n), nil
}

// Slugify lowercases the input and collapses everything that isn't
// a letter or digit into single dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func randInt(min, max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}
