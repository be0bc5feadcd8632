// Command ckb-auth-spawn is the spawn-ABI entry point: it decodes four
// lowercase-hex argv slots and delegates to pkg/auth/abi.Validate,
// returning the resulting code as the process exit status.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/nervosnetwork/ckb-auth-go/internal/applog"
	"github.com/nervosnetwork/ckb-auth-go/internal/authconfig"
	"github.com/nervosnetwork/ckb-auth-go/internal/metrics"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/abi"
	"github.com/nervosnetwork/ckb-auth-go/pkg/auth/authcode"
	"github.com/nervosnetwork/ckb-auth-go/pkg/crypto/hash"
	"go.uber.org/zap"
)

const messageHexLen = 32 * 2 // BLAKE2B_BLOCK_SIZE * 2
const pubkeyHashHexLen = hash.FingerprintSize * 2

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 4 {
		return -1
	}

	cfg := authconfig.Default()
	algHex, sigHex, msgHex, fpHex := args[0], args[1], args[2], args[3]

	if len(algHex) != 2 || len(sigHex)%2 != 0 ||
		len(msgHex) != messageHexLen || len(fpHex) != pubkeyHashHexLen {
		return int(authcode.SpawnInvalidLength)
	}
	if len(sigHex) > cfg.MaxSpawnSignatureHex {
		return int(authcode.SpawnSignTooLong)
	}

	algBytes, err := hex.DecodeString(algHex)
	if err != nil || len(algBytes) != 1 {
		return int(authcode.SpawnInvalidAlgorithmID)
	}

	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return int(authcode.SpawnInvalidSig)
	}

	msg, err := hex.DecodeString(msgHex)
	if err != nil || len(msg) != messageHexLen/2 {
		return int(authcode.SpawnInvalidMsg)
	}

	fp, err := hex.DecodeString(fpHex)
	if err != nil || len(fp) != hash.FingerprintSize {
		return int(authcode.SpawnInvalidPubkey)
	}

	logger, logErr := applog.New(cfg.Logger.LogEncoding, cfg.Logger.LogLevel)
	if logErr != nil {
		return int(abi.Validate(algBytes[0], sig, msg, fp, nil))
	}
	defer logger.Sync() //nolint:errcheck

	algName := auth.AlgorithmID(algBytes[0]).String()
	start := time.Now()
	code := int(abi.Validate(algBytes[0], sig, msg, fp, nil))
	elapsed := time.Since(start)

	metrics.Observe(algName, fmt.Sprint(code))
	logger.Debug("dispatch",
		zap.String("alg", algName),
		zap.Int32("code", int32(code)),
		zap.Duration("duration", elapsed),
	)
	return code
}
