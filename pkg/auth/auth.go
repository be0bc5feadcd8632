// Package auth implements the authentication dispatcher: given an
// algorithm id, a signature, a 32-byte message digest and a claimed
// 20-byte fingerprint, it answers whether the signature proves ownership
// of that fingerprint under the selected algorithm.
package auth

import (
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/authcode"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/canon"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/host"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/multisig"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/ownerlock"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/validator"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/hash"
)

// AlgorithmID selects a verification pipeline. The numeric values are
// opaque to the host ABI: each id is assigned in branch-table order and
// carries no meaning beyond "the array index routes to this pipeline".
type AlgorithmID uint8

const (
	Ckb AlgorithmID = iota
	Ethereum
	Eos
	Tron
	Bitcoin
	Dogecoin
	Litecoin
	CkbMultisig
	Schnorr
	Cardano
	OwnerLock
)

func (a AlgorithmID) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return "Unknown"
}

var algorithmNames = map[AlgorithmID]string{
	Ckb:         "Ckb",
	Ethereum:    "Ethereum",
	Eos:         "Eos",
	Tron:        "Tron",
	Bitcoin:     "Bitcoin",
	Dogecoin:    "Dogecoin",
	Litecoin:    "Litecoin",
	CkbMultisig: "CkbMultisig",
	Schnorr:     "Schnorr",
	Cardano:     "Cardano",
	OwnerLock:   "OwnerLock",
}

// ecdsaSignatureSize is the fixed signature width the dispatcher requires
// up front for every ECDSA-recoverable-family algorithm, before any
// canonicalizer or validator runs.
const ecdsaSignatureSize = validator.ECDSASignatureSize

// route pairs a canonicalizer with the validator that consumes its output.
type route struct {
	canon          canon.Func
	validate       validator.Func
	fixedSigLength int // 0 means "no fixed-length precondition"
}

// routes is the branch table: a canonicalizer/validator pair per
// algorithm id, built once from literal data.
var routes = map[AlgorithmID]route{
	Ckb:      {canon: canon.Identity, validate: validator.Ckb, fixedSigLength: ecdsaSignatureSize},
	Ethereum: {canon: canon.Ethereum, validate: validator.Ethereum, fixedSigLength: ecdsaSignatureSize},
	Eos:      {canon: canon.Eos, validate: validator.Ethereum, fixedSigLength: ecdsaSignatureSize},
	Tron:     {canon: canon.Tron, validate: validator.Ethereum, fixedSigLength: ecdsaSignatureSize},
	Bitcoin:  {canon: canon.Bitcoin, validate: validator.Bitcoin, fixedSigLength: ecdsaSignatureSize},
	Dogecoin: {canon: canon.Dogecoin, validate: validator.Bitcoin, fixedSigLength: ecdsaSignatureSize},
	Litecoin: {canon: canon.Litecoin, validate: validator.Bitcoin, fixedSigLength: ecdsaSignatureSize},
	Schnorr:  {canon: canon.Identity, validate: validator.Schnorr},
	Cardano:  {canon: canon.Identity, validate: validator.Cardano},
}

// Validate answers whether sig proves ownership of fp under alg for msg.
// h is only consulted for OwnerLock; every other branch ignores it, so a
// nil host is legal for all of them. A nil return means the signature
// checks out; any non-nil error is an *authcode.Error carrying a status
// code.
func Validate(alg AlgorithmID, sig, msg []byte, fp hash.Fingerprint, h host.Host) error {
	if sig == nil || msg == nil || len(msg) == 0 {
		return authcode.New(authcode.InvalidArg)
	}

	if alg == CkbMultisig {
		return multisig.Verify(sig, msg, fp)
	}
	if alg == OwnerLock {
		if host.IsNil(h) {
			return authcode.New(authcode.InvalidArg)
		}
		return ownerlock.Verify(h, fp)
	}

	r, ok := routes[alg]
	if !ok {
		return authcode.New(authcode.NotImplemented)
	}
	if r.fixedSigLength != 0 && len(sig) != r.fixedSigLength {
		return authcode.New(authcode.InvalidArg)
	}

	canonical, err := r.canon(msg)
	if err != nil {
		return err
	}
	got, err := r.validate(sig, canonical)
	if err != nil {
		return err
	}
	if !got.Equal(fp) {
		return authcode.New(authcode.Mismatched)
	}
	return nil
}
