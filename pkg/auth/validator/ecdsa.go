// Package validator implements the per-algorithm validation pipelines:
// parse signature, recover or verify against the canonicalized message,
// and derive the scheme's fingerprint.
package validator

import (
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/authcode"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/curve"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/hash"
)

// Func recovers or verifies sig over msg (already canonicalized) and
// derives the claimed signer's fingerprint.
type Func func(sig, msg []byte) (hash.Fingerprint, error)

// ECDSASignatureSize is the width of the common ECDSA-recoverable
// signature shape: 64-byte compact signature ‖ 1-byte recovery id.
const ECDSASignatureSize = 65

// recIDIndex is the tail byte carrying the recovery id in the "native"
// ECDSA signature layout used by Ckb/Ethereum/Eos/Tron.
const recIDIndex = 64

// Ckb recovers a compressed secp256k1 pubkey and fingerprints it with
// BLAKE2b-256, truncated to 20 bytes.
func Ckb(sig, msg []byte) (hash.Fingerprint, error) {
	if len(sig) != ECDSASignatureSize {
		return hash.Fingerprint{}, authcode.New(authcode.InvalidArg)
	}
	pub, err := curve.RecoverCompressed(sig[:recIDIndex], sig[recIDIndex], msg)
	if err != nil {
		return hash.Fingerprint{}, authcode.Wrap(authcode.WrongState, err)
	}
	return hash.Blake2b256Fingerprint(pub), nil
}

// Ethereum recovers an uncompressed secp256k1 pubkey and fingerprints it
// with Keccak-256 over the 64 payload bytes (0x04 prefix stripped),
// truncated to the low 20 bytes. Eos and Tron reuse this exact validator —
// only their canonicalizer differs.
func Ethereum(sig, msg []byte) (hash.Fingerprint, error) {
	if len(sig) != ECDSASignatureSize {
		return hash.Fingerprint{}, authcode.New(authcode.InvalidArg)
	}
	pub, err := curve.RecoverUncompressed(sig[:recIDIndex], sig[recIDIndex], msg)
	if err != nil {
		return hash.Fingerprint{}, authcode.Wrap(authcode.WrongState, err)
	}
	return hash.Keccak256Fingerprint(pub[1:]), nil
}

// Bitcoin recovers a secp256k1 pubkey from the BTC-family signature layout
// (header byte encoding recid+compressed ‖ 64-byte compact signature) and
// fingerprints it with RIPEMD-160(SHA-256(serialized pubkey)). Dogecoin and
// Litecoin reuse this exact validator — only their canonicalizer differs.
func Bitcoin(sig, msg []byte) (hash.Fingerprint, error) {
	if len(sig) != ECDSASignatureSize {
		return hash.Fingerprint{}, authcode.New(authcode.InvalidArg)
	}
	header := sig[0]
	recID := (header - 27) & 3
	compressed := (header-27)&4 != 0
	compact := sig[1:ECDSASignatureSize]

	var pub []byte
	var err error
	if compressed {
		pub, err = curve.RecoverCompressed(compact, recID, msg)
	} else {
		pub, err = curve.RecoverUncompressed(compact, recID, msg)
	}
	if err != nil {
		return hash.Fingerprint{}, authcode.Wrap(authcode.WrongState, err)
	}
	return hash.Hash160BTC(pub), nil
}
