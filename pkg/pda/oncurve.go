package pda

import (
	"filippo.io/edwards25519"
)

// isOnCurve reports whether a 32-byte value decompresses to a valid
// ed25519 curve point. PDAs must be off the curve so no private key can
// ever sign for them.
func isOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
