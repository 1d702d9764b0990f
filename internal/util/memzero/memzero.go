// Package memzero wipes secret material from memory on a best-effort basis.
package memzero

import "crypto/subtle"

// Zero overwrites every buffer with zeros. The Go runtime may already hold
// copies elsewhere, so this narrows the exposure window only.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		subtle.XORBytes(b, b, b)
	}
}
