// Package multisig implements the secp256k1_blake160_multisig_all
// descriptor format: a reserved/require_first_n/threshold/pubkeys_cnt
// header, a run of 20-byte pubkey-hash slots, and a run of 65-byte
// ECDSA-recoverable signature slots.
package multisig

import (
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/authcode"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/validator"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/hash"
)

const (
	flagsSize      = 4
	signatureSize  = validator.ECDSASignatureSize
	pubkeyHashSize = hash.FingerprintSize
)

// descriptor is the parsed, validated multisig_script header.
type descriptor struct {
	requireFirstN byte
	threshold     byte
	pubkeysCnt    byte
	scriptLen     int // flagsSize + pubkeyHashSize*pubkeysCnt
}

func parseDescriptor(lockBytes []byte) (*descriptor, error) {
	if len(lockBytes) < flagsSize {
		return nil, authcode.New(authcode.WitnessSize)
	}
	reserved := lockBytes[0]
	requireFirstN := lockBytes[1]
	threshold := lockBytes[2]
	pubkeysCnt := lockBytes[3]

	if reserved != 0 {
		return nil, authcode.New(authcode.InvalidReserveField)
	}
	if pubkeysCnt == 0 {
		return nil, authcode.New(authcode.InvalidPubkeysCnt)
	}
	if threshold > pubkeysCnt || threshold == 0 {
		return nil, authcode.New(authcode.InvalidThreshold)
	}
	if requireFirstN > threshold {
		return nil, authcode.New(authcode.InvalidRequireFirstN)
	}

	return &descriptor{
		requireFirstN: requireFirstN,
		threshold:     threshold,
		pubkeysCnt:    pubkeysCnt,
		scriptLen:     flagsSize + pubkeyHashSize*int(pubkeysCnt),
	}, nil
}

// Verify checks that lockBytes encodes a valid multisig descriptor whose
// script hash matches fp, and that at least threshold of the attached
// signatures recover to distinct, listed pubkey hashes over msg, with the
// first require_first_n pubkey slots among those matched.
//
// lockBytes layout: [reserved, require_first_n, threshold, pubkeys_cnt] ‖
// pubkey_hash[0..pubkeys_cnt) ‖ signature[0..threshold), each signature
// being a 65-byte ECDSA-recoverable blob (64-byte compact sig ‖ recid).
func Verify(lockBytes, msg []byte, fp hash.Fingerprint) error {
	desc, err := parseDescriptor(lockBytes)
	if err != nil {
		return err
	}

	requiredLen := desc.scriptLen + signatureSize*int(desc.threshold)
	if len(lockBytes) != requiredLen {
		return authcode.New(authcode.WitnessSize)
	}

	scriptHash := hash.Blake2b256Fingerprint(lockBytes[:desc.scriptLen])
	if !scriptHash.Equal(fp) {
		return authcode.New(authcode.MultisigScriptHash)
	}

	// pubkeys_cnt is a uint8, so a fixed [256]bool array covers every
	// possible descriptor without a heap allocation.
	var used [256]bool
	for i := 0; i < int(desc.threshold); i++ {
		off := desc.scriptLen + i*signatureSize
		sig := lockBytes[off : off+signatureSize]

		candidate, err := validator.Ckb(sig, msg)
		if err != nil {
			return authcode.Wrap(authcode.SecpRecoverPubkey, err)
		}

		matched := false
		for j := 0; j < int(desc.pubkeysCnt); j++ {
			if used[j] {
				continue
			}
			slot := lockBytes[flagsSize+j*pubkeyHashSize : flagsSize+(j+1)*pubkeyHashSize]
			want := hash.FingerprintFromBytes(slot)
			if !candidate.Equal(want) {
				continue
			}
			matched = true
			used[j] = true
			break
		}
		if !matched {
			return authcode.New(authcode.Verification)
		}
	}

	for i := 0; i < int(desc.requireFirstN); i++ {
		if !used[i] {
			return authcode.New(authcode.Verification)
		}
	}

	return nil
}
