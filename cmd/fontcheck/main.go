// Package main validates the configured document fonts and exits non-zero
// when any weight is missing, a placeholder, or unparsable.
package main

import (
	"flag"
	"os"

	fontcheckcmd "github.com/louisbranch/formdesk/internal/cmd/fontcheck"
	"github.com/louisbranch/formdesk/internal/platform/config"
)

func main() {
	cfg, err := fontcheckcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse config: %v", err)
	}
	if err := fontcheckcmd.Run(os.Stdout, cfg); err != nil {
		os.Exit(1)
	}
}
