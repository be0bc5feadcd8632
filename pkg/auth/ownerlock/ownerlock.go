// Package ownerlock implements the OwnerLock branch: rather than verifying
// a signature, it asks the host whether any input cell's lock-script hash
// matches the claimed fingerprint, and defers to whatever already
// authorized that cell's unlocking.
package ownerlock

import (
	"crypto/subtle"

	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/authcode"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/host"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/hash"
)

// Verify scans h's input cells in order and succeeds as soon as one lock
// hash's leading 20 bytes equal fp. A host error other than running past
// the last input cell is treated as "not present" rather than propagated,
// breaking the scan loop on any non-out-of-bound error instead of failing
// the whole validation.
func Verify(h host.Host, fp hash.Fingerprint) error {
	if host.IsNil(h) {
		return authcode.New(authcode.InvalidArg)
	}
	for i := uint64(0); ; i++ {
		lockHash, ok, err := h.InputLockHash(i)
		if !ok {
			break
		}
		if err != nil {
			break
		}
		if subtle.ConstantTimeCompare(lockHash[:hash.FingerprintSize], fp[:]) == 1 {
			return nil
		}
	}
	return authcode.New(authcode.Mismatched)
}
