package curve

import "crypto/ed25519"

// VerifyEd25519 verifies an Ed25519 signature over msg under pub. This
// thinly wraps the standard library's crypto/ed25519, which needs no
// third-party package for signature verification.
func VerifyEd25519(pub, sig, msg []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}
