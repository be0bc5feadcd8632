// Command ckb-auth-cli is a developer-facing wrapper around pkg/auth for
// exercising the dispatcher from a shell; it is not part of the on-chain
// contract.
package main

import (
	"fmt"
	"os"

	"github.com/nervosnetwork/ckb-auth-go/cli/app"
)

func main() {
	ctl := app.New()
	if err := ctl.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
