// Package fontcheck validates the configured document fonts without starting
// the portal.
package fontcheck

import (
	"flag"
	"fmt"
	"io"

	"github.com/louisbranch/formdesk/internal/platform/assets/fonts"
	"github.com/louisbranch/formdesk/internal/platform/config"
)

// ParseConfig parses env and flags into a font configuration.
func ParseConfig(fs *flag.FlagSet, args []string) (fonts.Config, error) {
	cfg := fonts.DefaultConfig()
	if err := config.ParseEnv(&cfg); err != nil {
		return fonts.Config{}, err
	}

	fs.StringVar(&cfg.RegularPath, "regular", cfg.RegularPath, "Path to the regular weight font file")
	fs.StringVar(&cfg.BoldPath, "bold", cfg.BoldPath, "Path to the bold weight font file")
	fs.StringVar(&cfg.MediumPath, "medium", cfg.MediumPath, "Path to the medium weight font file")
	if err := fs.Parse(args); err != nil {
		return fonts.Config{}, err
	}
	return cfg, nil
}

// Run validates each weight and writes a per-weight report.
//
// Validation runs weight by weight so a report names every broken weight in
// one pass instead of stopping at the first.
func Run(w io.Writer, cfg fonts.Config) error {
	var failed bool
	for _, weight := range fonts.Weights() {
		err := fonts.ValidateWeight(cfg, weight)
		if err != nil {
			failed = true
			fmt.Fprintf(w, "%-8s FAIL %v\n", weight, err)
			continue
		}
		fmt.Fprintf(w, "%-8s ok\n", weight)
	}
	if failed {
		return fmt.Errorf("font validation failed")
	}
	return nil
}
