// Package applog wires go.uber.org/zap for the CLI and spawn binaries.
// pkg/auth itself never logs: its sole output is the status code, and
// logging belongs to the entry adapters that wrap it.
package applog

import "go.uber.org/zap"

// New builds a console-encoded development logger tagged with module,
// matching the consensus engine's own logger bring-up.
func New(encoding, level string) (*zap.Logger, error) {
	cc := zap.NewDevelopmentConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	if encoding != "" {
		cc.Encoding = encoding
	} else {
		cc.Encoding = "console"
	}
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		cc.Level = lvl
	}

	log, err := cc.Build()
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("module", "ckb-auth")), nil
}
