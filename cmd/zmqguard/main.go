// zmqguard - libzmq compatibility preflight
//
// Runs the same libzmq version rule that the zmqguard package enforces
// through cgo, so build scripts can stop before `go build` does.
package main

import (
	"os"

	"github.com/getkawai/zmqguard/cmd/zmqguard/cmd"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := cmd.Execute(cmd.NewRootCmd(Version)); err != nil {
		os.Exit(1)
	}
}
