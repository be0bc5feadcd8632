// Package host defines the narrow surface the dispatcher needs from its
// embedding environment: enumerating input cell lock-script hashes for the
// OwnerLock branch. Production callers back this with live CKB syscalls;
// tests back it with an in-memory fake.
package host

import "reflect"

// Host gives the dispatcher read access to the transaction's input cells,
// without binding pkg/auth to any particular syscall layer or ABI.
type Host interface {
	// InputLockHash returns the full 32-byte lock-script hash of the
	// input cell at index (only its leading 20 bytes are ever compared
	// against a fingerprint). ok is false once index runs past the last
	// input cell (the CKB_INDEX_OUT_OF_BOUND case); a non-nil err is
	// treated identically to ok == false — the scan simply stops, it is
	// not surfaced as a distinct failure.
	InputLockHash(index uint64) (hash [32]byte, ok bool, err error)
}

// IsNil reports whether h carries no usable implementation: either a bare
// nil interface, or a non-nil interface wrapping a nil pointer (the latter
// still satisfies the Host interface but panics the moment a pointer-
// receiver method dereferences its receiver).
func IsNil(h Host) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}
