// Package verify implements ckb-auth-cli's "verify" command: interactively
// exercising pkg/auth.Validate from a shell during development.
package verify

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mr-tron/base58"
	"github.com/nervosnetwork/ckb-auth-go/cli/flags"
	"github.com/nervosnetwork/ckb-auth-go/internal/applog"
	"github.com/nervosnetwork/ckb-auth-go/internal/authconfig"
	"github.com/nervosnetwork/ckb-auth-go/internal/metrics"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/authcode"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/host/hosttest"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/hash"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var algorithmNames = map[string]auth.AlgorithmID{
	"ckb":       auth.Ckb,
	"eth":       auth.Ethereum,
	"eos":       auth.Eos,
	"tron":      auth.Tron,
	"btc":       auth.Bitcoin,
	"doge":      auth.Dogecoin,
	"ltc":       auth.Litecoin,
	"multisig":  auth.CkbMultisig,
	"schnorr":   auth.Schnorr,
	"cardano":   auth.Cardano,
	"ownerlock": auth.OwnerLock,
}

// NewCommand builds the "verify" urfave/cli command.
func NewCommand() cli.Command {
	return cli.Command{
		Name:  "verify",
		Usage: "verify a signature against a claimed fingerprint",
		Flags: flags.MarkRequired([]cli.Flag{
			cli.StringFlag{Name: "alg", Usage: "one of ckb,eth,eos,tron,btc,doge,ltc,multisig,schnorr,cardano,ownerlock"},
			cli.GenericFlag{Name: "sig", Usage: "hex-encoded signature", Value: &flags.HexBytes{}},
			cli.GenericFlag{Name: "msg", Usage: "hex-encoded 32-byte message digest", Value: &flags.HexBytes{}},
			cli.GenericFlag{Name: "fingerprint", Usage: "hex-encoded 20-byte claimed fingerprint", Value: &flags.HexBytes{}},
			cli.StringFlag{Name: "cells", Usage: "comma-separated hex lock hashes, for --alg ownerlock"},
			cli.BoolFlag{Name: "fingerprint-as-address", Usage: "also print the fingerprint base58-encoded"},
			cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
		}, "alg", "sig", "msg", "fingerprint"),
		Action: runVerify,
	}
}

func runVerify(c *cli.Context) error {
	cfg, err := authconfig.Load(c.String("config"))
	if err != nil {
		return err
	}
	logger, err := applog.New(cfg.Logger.LogEncoding, cfg.Logger.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	alg, ok := algorithmNames[strings.ToLower(c.String("alg"))]
	if !ok {
		return fmt.Errorf("unknown --alg %q", c.String("alg"))
	}

	sig := c.Generic("sig").(*flags.HexBytes).Value
	msg := c.Generic("msg").(*flags.HexBytes).Value
	fpBytes := c.Generic("fingerprint").(*flags.HexBytes).Value
	if len(fpBytes) != hash.FingerprintSize {
		return fmt.Errorf("--fingerprint must be %d bytes, got %d", hash.FingerprintSize, len(fpBytes))
	}
	fp := hash.FingerprintFromBytes(fpBytes)

	h := hosttest.NewHost()
	if c.String("cells") != "" {
		h, err = parseCells(c.String("cells"))
		if err != nil {
			return err
		}
	}

	start := time.Now()
	verr := auth.Validate(alg, sig, msg, fp, h)
	elapsed := time.Since(start)

	code := int32(0)
	if verr != nil {
		var ae *authcode.Error
		if errors.As(verr, &ae) {
			code = int32(ae.Code)
		} else {
			code = int32(authcode.WrongState)
		}
	}
	metrics.Observe(alg.String(), fmt.Sprint(code))
	logger.Debug("dispatch",
		zap.String("alg", alg.String()),
		zap.Int32("code", code),
		zap.Duration("duration", elapsed),
	)

	if verr != nil {
		return verr
	}

	fmt.Fprintln(c.App.Writer, "ok")
	if c.Bool("fingerprint-as-address") {
		fmt.Fprintln(c.App.Writer, base58.Encode(fp.Bytes()))
	}
	return nil
}

func parseCells(raw string) (*hosttest.Host, error) {
	parts := strings.Split(raw, ",")
	hashes := make([][32]byte, 0, len(parts))
	for _, p := range parts {
		b, err := hex.DecodeString(strings.TrimSpace(p))
		if err != nil || len(b) != 32 {
			return nil, fmt.Errorf("--cells: %q is not a 32-byte hex hash", p)
		}
		var h [32]byte
		copy(h[:], b)
		hashes = append(hashes, h)
	}
	return hosttest.NewHost(hashes...), nil
}
