// Package main is the entry point for the gamehost CLI.
//
// gamehost provisions a dedicated game server on AWS or Hetzner Cloud and
// serves the HTTP endpoint that starts it on demand.
//
// Commands: init, plan, provision, serve, start, stop, status.
//
// For detailed usage information, run:
//
//	gamehost --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/gamehost/cmd/gamehost/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
