package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"realestate/internal/domain"
)

const fingerprintBytes = 10

// Fingerprint renders the first 10 bytes of SHA-256(pub) as five
// colon-separated groups of four hex digits, e.g. "3f2a:91c0:...".
func Fingerprint(pub domain.Pubkey) string {
	sum := sha256.Sum256(pub[:])
	h := hex.EncodeToString(sum[:fingerprintBytes])
	var b strings.Builder
	for i := 0; i < len(h); i += 4 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(h[i : i+4])
	}
	return b.String()
}
