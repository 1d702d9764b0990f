package anchor

import (
	"crypto/sha256"
	"strings"
	"unicode"
)

// DiscriminatorSize is the length of an instruction discriminator.
const DiscriminatorSize = 8

// Discriminator returns the instruction discriminator for name.
func Discriminator(name string) [DiscriminatorSize]byte {
	sum := sha256.Sum256([]byte("global:" + SnakeCase(name)))
	var d [DiscriminatorSize]byte
	copy(d[:], sum[:DiscriminatorSize])
	return d
}

// SnakeCase converts camelCase, PascalCase and kebab-case to snake_case.
func SnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case r == '-' || r == ' ':
			b.WriteByte('_')
			continue
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
