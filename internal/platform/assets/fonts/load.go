package fonts

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/sfnt"

	apperrors "github.com/louisbranch/formdesk/internal/platform/errors"
)

// Config carries per-weight font sources.
//
// A weight resolves from its file path when set, otherwise from its
// base64-encoded value. The encoded values default to the sentinel
// placeholders, which Load rejects.
type Config struct {
	RegularPath string `env:"FORMDESK_FONT_REGULAR_PATH"`
	BoldPath    string `env:"FORMDESK_FONT_BOLD_PATH"`
	MediumPath  string `env:"FORMDESK_FONT_MEDIUM_PATH"`

	RegularData string `env:"FORMDESK_FONT_REGULAR_DATA"`
	BoldData    string `env:"FORMDESK_FONT_BOLD_DATA"`
	MediumData  string `env:"FORMDESK_FONT_MEDIUM_DATA"`
}

// DefaultConfig returns the unpopulated configuration holding the sentinel
// placeholders for every weight.
func DefaultConfig() Config {
	return Config{
		RegularData: PlaceholderRegular,
		BoldData:    PlaceholderBold,
		MediumData:  PlaceholderMedium,
	}
}

func (c Config) source(w Weight) (path string, data string) {
	switch w {
	case WeightRegular:
		return c.RegularPath, c.RegularData
	case WeightBold:
		return c.BoldPath, c.BoldData
	case WeightMedium:
		return c.MediumPath, c.MediumData
	default:
		return "", ""
	}
}

// Load resolves, decodes and parse-checks every weight.
//
// Any weight that is missing, still equals its sentinel placeholder, fails to
// decode as base64, or does not parse as an SFNT font yields a configuration
// error naming the weight. A table returned by Load never contains sentinel
// data.
func Load(cfg Config) (*Table, error) {
	assets := make([]Asset, 0, len(Weights()))
	for _, weight := range Weights() {
		raw, err := resolveWeight(cfg, weight)
		if err != nil {
			return nil, err
		}
		parsed, err := sfnt.Parse(raw)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindConfig,
				fmt.Sprintf("font %s: data is not a valid font", weight), err)
		}
		assets = append(assets, Asset{Weight: weight, Data: raw, Font: parsed})
	}
	return NewTable(assets...)
}

// ValidateWeight runs the same resolution and parse checks Load applies, for
// a single weight.
func ValidateWeight(cfg Config, weight Weight) error {
	raw, err := resolveWeight(cfg, weight)
	if err != nil {
		return err
	}
	if _, err := sfnt.Parse(raw); err != nil {
		return apperrors.Wrap(apperrors.KindConfig,
			fmt.Sprintf("font %s: data is not a valid font", weight), err)
	}
	return nil
}

func resolveWeight(cfg Config, weight Weight) ([]byte, error) {
	path, data := cfg.source(weight)

	if trimmed := strings.TrimSpace(path); trimmed != "" {
		raw, err := os.ReadFile(trimmed)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindConfig,
				fmt.Sprintf("font %s: read %s", weight, trimmed), err)
		}
		return raw, nil
	}

	data = strings.TrimSpace(data)
	if data == "" {
		return nil, apperrors.E(apperrors.KindConfig,
			fmt.Sprintf("font %s: no data configured", weight))
	}
	if data == Placeholder(weight) {
		return nil, apperrors.E(apperrors.KindConfig,
			fmt.Sprintf("font %s: still holds the placeholder value", weight))
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindConfig,
			fmt.Sprintf("font %s: decode base64", weight), err)
	}
	return raw, nil
}
