// Package flags provides urfave/cli flag helpers for ckb-auth-cli: custom
// flag.Value types wrapping domain-specific parsing.
package flags

import (
	"encoding/hex"
	"fmt"
)

// HexBytes is a flag.Value decoding its argument as lowercase or
// uppercase hex into raw bytes.
type HexBytes struct {
	Value []byte
}

func (h *HexBytes) String() string {
	if h == nil {
		return ""
	}
	return hex.EncodeToString(h.Value)
}

func (h *HexBytes) Set(s string) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	h.Value = b
	return nil
}
