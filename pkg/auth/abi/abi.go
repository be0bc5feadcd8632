// Package abi is the byte-slice/int32 boundary a cgo `//export` shim or a
// RISC-V VM host binding would wrap around pkg/auth.Validate. The binding
// glue itself — the dynamic-loader ABI, the VM host syscalls — is out of
// scope; only the Go-side contract lives here.
package abi

import (
	"errors"

	"github.com/nervosnetwork/ckb-auth-go/pkg/auth"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/authcode"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/host"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/hash"
)

// Validate takes alg, a signature, a message and a claimed pubkey hash as
// raw byte slices, folding what a C ABI would pass as separate size
// parameters into Go slice lengths. h is only consulted for the OwnerLock
// algorithm id; pass nil for every other call, which makes OwnerLock
// itself fail with authcode.InvalidArg rather than panic. Returns 0 on
// success, a nonzero authcode.Code value on failure.
func Validate(alg byte, sig, msg, fp []byte, h host.Host) int32 {
	if sig == nil || msg == nil || len(msg) == 0 {
		return int32(authcode.InvalidArg)
	}
	if len(fp) != hash.FingerprintSize {
		return int32(authcode.InvalidArg)
	}

	err := auth.Validate(auth.AlgorithmID(alg), sig, msg, hash.FingerprintFromBytes(fp), h)
	if err == nil {
		return 0
	}

	var ae *authcode.Error
	if !errors.As(err, &ae) {
		return int32(authcode.WrongState)
	}
	return int32(ae.Code)
}
