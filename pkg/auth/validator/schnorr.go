package validator

import (
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/authcode"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/curve"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/hash"
)

// SchnorrSignatureSize is the width of a Schnorr signature blob: 32-byte
// x-only pubkey ‖ 64-byte BIP-340 signature.
const SchnorrSignatureSize = curve.XOnlyPubkeySize + curve.SchnorrSignatureSize

// Schnorr verifies a BIP-340 signature and fingerprints the embedded x-only
// pubkey with BLAKE2b-256, truncated to 20 bytes.
func Schnorr(sig, msg []byte) (hash.Fingerprint, error) {
	if len(sig) != SchnorrSignatureSize {
		return hash.Fingerprint{}, authcode.New(authcode.InvalidArg)
	}
	pubkey := sig[:curve.XOnlyPubkeySize]
	signature := sig[curve.XOnlyPubkeySize:]

	ok, err := curve.VerifySchnorr(pubkey, signature, msg)
	if err != nil || !ok {
		return hash.Fingerprint{}, authcode.New(authcode.Schnorr)
	}
	return hash.Blake2b256Fingerprint(pubkey), nil
}
