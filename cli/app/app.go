// Package app assembles the ckb-auth-cli urfave/cli.App from its command
// packages.
package app

import (
	"os"

	"github.com/nervosnetwork/ckb-auth-go/cli/verify"
	"github.com/urfave/cli"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// New creates a ckb-auth-cli instance of [cli.App] with all commands
// included.
func New() *cli.App {
	ctl := cli.NewApp()
	ctl.Name = "ckb-auth-cli"
	ctl.Version = Version
	ctl.Usage = "Developer CLI for the ckb-auth verification dispatcher"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, verify.NewCommand())
	return ctl
}
