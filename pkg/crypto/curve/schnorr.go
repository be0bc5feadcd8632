package curve

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// XOnlyPubkeySize is the width of a BIP-340 x-only public key.
const XOnlyPubkeySize = 32

// SchnorrSignatureSize is the width of a BIP-340 signature (R ‖ s).
const SchnorrSignatureSize = 64

// VerifySchnorr verifies a BIP-340 Schnorr signature sig over msg under the
// x-only public key xonlyPubkey. xonlyPubkey must be XOnlyPubkeySize bytes
// and sig must be SchnorrSignatureSize bytes.
//
// secp256k1/v4's own schnorr subpackage implements EC-Schnorr-DCRv0, a
// different (Decred-specific) scheme; BIP-340 compatibility comes from
// btcec/v2/schnorr instead.
func VerifySchnorr(xonlyPubkey, sig, msg []byte) (bool, error) {
	if len(xonlyPubkey) != XOnlyPubkeySize {
		return false, fmt.Errorf("curve: x-only pubkey must be %d bytes, got %d", XOnlyPubkeySize, len(xonlyPubkey))
	}
	if len(sig) != SchnorrSignatureSize {
		return false, fmt.Errorf("curve: schnorr signature must be %d bytes, got %d", SchnorrSignatureSize, len(sig))
	}

	pub, err := schnorr.ParsePubKey(xonlyPubkey)
	if err != nil {
		return false, err
	}
	parsed, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false, err
	}
	return parsed.Verify(msg, pub), nil
}
