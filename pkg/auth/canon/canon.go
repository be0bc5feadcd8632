// Package canon implements the message canonicalizers: pure functions
// mapping a raw 32-byte digest to the 32-byte digest a given dialect's
// signer actually signs over.
package canon

import (
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/authcode"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/hash"
)

// DigestSize is the fixed width every canonicalizer consumes and produces.
const DigestSize = 32

// Func canonicalizes a raw message digest into the bytes a signer dialect
// actually signs.
type Func func(msg []byte) ([]byte, error)

// Identity returns msg unchanged, after checking its width. This backs the
// Ckb, Schnorr and Cardano branches, which sign the raw digest directly.
func Identity(msg []byte) ([]byte, error) {
	if len(msg) != DigestSize {
		return nil, authcode.New(authcode.InvalidArg)
	}
	out := make([]byte, DigestSize)
	copy(out, msg)
	return out, nil
}

var ethPrefix = append([]byte{0x19}, []byte("Ethereum Signed Message:\n32")...)

// Ethereum computes Keccak-256(0x19 ‖ "Ethereum Signed Message:\n32" ‖ msg).
func Ethereum(msg []byte) ([]byte, error) {
	if len(msg) != DigestSize {
		return nil, authcode.New(authcode.InvalidArg)
	}
	out := hash.Keccak256(ethPrefix, msg)
	return out[:], nil
}

var tronPrefix = append([]byte{0x19}, []byte("TRON Signed Message:\n32")...)

// Tron computes Keccak-256(0x19 ‖ "TRON Signed Message:\n32" ‖ msg).
func Tron(msg []byte) ([]byte, error) {
	if len(msg) != DigestSize {
		return nil, authcode.New(authcode.InvalidArg)
	}
	out := hash.Keccak256(tronPrefix, msg)
	return out[:], nil
}

// Eos computes SHA-256(msg). A hex-split intermediate buffer is sometimes
// built by EOS-family signers before hashing but never actually fed into
// the digest, so the observable canonicalization is plain SHA-256(msg).
func Eos(msg []byte) ([]byte, error) {
	if len(msg) != DigestSize {
		return nil, authcode.New(authcode.InvalidArg)
	}
	out := hash.Sha256(msg)
	return out[:], nil
}

// btcVariant implements the shared Bitcoin/Dogecoin/Litecoin "Signed
// Message" framing: frame = len(magic) ‖ magic ‖ 64 ‖ lowercase_hex(msg),
// output = SHA-256(SHA-256(frame)).
func btcVariant(magic string) Func {
	return func(msg []byte) ([]byte, error) {
		if len(msg) != DigestSize {
			return nil, authcode.New(authcode.InvalidArg)
		}
		hexMsg := make([]byte, DigestSize*2)
		const hexTable = "0123456789abcdef"
		for i, b := range msg {
			hexMsg[i*2] = hexTable[b>>4]
			hexMsg[i*2+1] = hexTable[b&0x0F]
		}

		frame := make([]byte, 0, 2+len(magic)+len(hexMsg))
		frame = append(frame, byte(len(magic)))
		frame = append(frame, magic...)
		frame = append(frame, byte(len(hexMsg)))
		frame = append(frame, hexMsg...)

		out := hash.DoubleSha256(frame)
		return out[:], nil
	}
}

// Bitcoin canonicalizes under the "Bitcoin Signed Message:\n" magic.
var Bitcoin = btcVariant("Bitcoin Signed Message:\n")

// Dogecoin canonicalizes under the "Dogecoin Signed Message:\n" magic.
var Dogecoin = btcVariant("Dogecoin Signed Message:\n")

// Litecoin canonicalizes under the "Litecoin Signed Message:\n" magic.
var Litecoin = btcVariant("Litecoin Signed Message:\n")
