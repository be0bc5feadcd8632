// Package authcode defines the numeric error taxonomy returned by the
// authentication dispatcher. The numbers are fixed by host-ABI
// compatibility (callers test against them), so they are never renumbered
// even as the Go port evolves.
package authcode

import (
	"errors"
	"fmt"
)

// Code is a status returned by a validation pipeline. Zero means success.
type Code int32

// Input-shape errors, detected before any cryptographic work runs.
const (
	NotImplemented Code = 100 + iota
	Mismatched
	InvalidArg
	WrongState
	SpawnInvalidLength
	SpawnSignTooLong
	SpawnInvalidAlgorithmID
	SpawnInvalidSig
	SpawnInvalidMsg
	SpawnInvalidPubkey
	Schnorr
)

// Multisig descriptor and signing errors. These are kept distinct from the
// codes above for diagnostics.
const (
	InvalidReserveField  Code = -41
	InvalidPubkeysCnt    Code = -42
	InvalidThreshold     Code = -43
	InvalidRequireFirstN Code = -44
	MultisigScriptHash   Code = -51
	Verification         Code = -52
	WitnessSize          Code = -22
	SecpRecoverPubkey    Code = -11
)

// String renders a human-readable name, falling back to the numeric value
// for codes outside the known set.
func (c Code) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int32(c))
}

var names = map[Code]string{
	NotImplemented:          "NotImplemented",
	Mismatched:              "Mismatched",
	InvalidArg:              "InvalidArg",
	WrongState:              "WrongState",
	SpawnInvalidLength:      "SpawnInvalidLength",
	SpawnSignTooLong:        "SpawnSignTooLong",
	SpawnInvalidAlgorithmID: "SpawnInvalidAlgorithmId",
	SpawnInvalidSig:         "SpawnInvalidSig",
	SpawnInvalidMsg:         "SpawnInvalidMsg",
	SpawnInvalidPubkey:      "SpawnInvalidPubkey",
	Schnorr:                 "Schnorr",
	InvalidReserveField:     "InvalidReserveField",
	InvalidPubkeysCnt:       "InvalidPubkeysCnt",
	InvalidThreshold:        "InvalidThreshold",
	InvalidRequireFirstN:    "InvalidRequireFirstN",
	MultisigScriptHash:      "MultisigScriptHash",
	Verification:            "Verification",
	WitnessSize:             "WitnessSize",
	SecpRecoverPubkey:       "SecpRecoverPubkey",
}

// Error wraps a Code with an optional underlying cause, so callers can use
// errors.As to recover the Code while errors.Unwrap still reaches the root
// cause (e.g. a parse failure from the curve backend).
type Error struct {
	Code  Code
	Cause error
}

// New builds an *Error with no further cause.
func New(c Code) *Error {
	return &Error{Code: c}
}

// Wrap builds an *Error around an existing cause.
func Wrap(c Code, cause error) *Error {
	return &Error{Code: c, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether err carries the given Code anywhere in its chain.
func Is(err error, c Code) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == c
	}
	return false
}
