// Package hash provides the fixed-output digests the authentication
// dispatcher needs, plus the Fingerprint value type used throughout pkg/auth.
package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // the dispatcher's BTC-family chain requires RIPEMD-160 bit-for-bit.
	"golang.org/x/crypto/sha3"
)

// FingerprintSize is the width of every pubkey-hash value the dispatcher
// produces or compares against.
const FingerprintSize = 20

// Fingerprint is a 20-byte public-key fingerprint, the unit the dispatcher
// ultimately compares against the caller's claim.
type Fingerprint [FingerprintSize]byte

// Bytes returns a copy of the fingerprint's bytes.
func (f Fingerprint) Bytes() []byte {
	b := make([]byte, FingerprintSize)
	copy(b, f[:])
	return b
}

// Equal reports whether f and o carry the same bytes, using a
// constant-time comparison.
func (f Fingerprint) Equal(o Fingerprint) bool {
	return subtle.ConstantTimeCompare(f[:], o[:]) == 1
}

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// FingerprintFromBytes builds a Fingerprint from a byte slice of exactly
// FingerprintSize bytes, truncating/rejecting anything else is the caller's
// job (the dispatcher enforces fp_len == 20 before this is ever called).
func FingerprintFromBytes(b []byte) Fingerprint {
	var f Fingerprint
	copy(f[:], b)
	return f
}

// Blake2b256 computes the 32-byte BLAKE2b-256 digest of data.
func Blake2b256(data ...[]byte) [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails for a bad key, and we never pass one.
		panic(err)
	}
	for _, d := range data {
		h.Write(d) //nolint:errcheck // hash.Hash.Write never returns an error.
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Blake2b256Fingerprint computes BLAKE2b-256(data)[0:20], the fingerprint
// derivation shared by the CKB, Schnorr, Cardano and multisig branches.
func Blake2b256Fingerprint(data ...[]byte) Fingerprint {
	full := Blake2b256(data...)
	return FingerprintFromBytes(full[:FingerprintSize])
}

// Sha256 computes the 32-byte SHA-256 digest of data.
func Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// DoubleSha256 computes SHA-256(SHA-256(data)), the BTC-family message
// canonicalization finisher.
func DoubleSha256(data []byte) [32]byte {
	first := Sha256(data)
	return Sha256(first[:])
}

// Ripemd160 computes the 20-byte RIPEMD-160 digest of data.
func Ripemd160(data []byte) [20]byte {
	h := ripemd160.New()
	h.Write(data) //nolint:errcheck // hash.Hash.Write never returns an error.
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Hash160BTC computes RIPEMD-160(SHA-256(data)), the BTC-family pubkey
// fingerprint chain.
func Hash160BTC(data []byte) Fingerprint {
	sha := Sha256(data)
	rmd := Ripemd160(sha[:])
	return Fingerprint(rmd)
}

// Keccak256 computes the 32-byte Keccak-256 digest of data. Ethereum's
// keccak predates the NIST SHA-3 finalization, so this intentionally uses
// golang.org/x/crypto/sha3's legacy Keccak (NewLegacyKeccak256), not the
// standardized sha3.Sum256.
func Keccak256(data ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d) //nolint:errcheck // hash.Hash.Write never returns an error.
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Keccak256Fingerprint computes Keccak-256(data)[12:32], the ETH/EOS/Tron
// fingerprint derivation applied to an uncompressed pubkey's 64 payload
// bytes (prefix byte already stripped by the caller).
func Keccak256Fingerprint(data []byte) Fingerprint {
	full := Keccak256(data)
	return FingerprintFromBytes(full[12:])
}
