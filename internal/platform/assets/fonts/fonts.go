// Package fonts holds the font assets embedded into generated documents.
//
// The table maps the three weights used by the document renderer to encoded
// font data. Deployments supply real data through configuration; until they
// do, each weight holds a sentinel placeholder that is deliberately not valid
// font data. Load refuses sentinel or undecodable data so a misconfigured
// deployment fails at startup instead of producing corrupt documents.
package fonts

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// Weight identifies one font weight in the document font set.
type Weight string

const (
	WeightRegular Weight = "regular"
	WeightBold    Weight = "bold"
	WeightMedium  Weight = "medium"
)

// Sentinel placeholder values shipped in place of real encoded font data.
// They are kept verbatim so a deployment that never populated its fonts is
// detectable by direct comparison.
const (
	PlaceholderRegular = "formdesk:placeholder:font-regular"
	PlaceholderBold    = "formdesk:placeholder:font-bold"
	PlaceholderMedium  = "formdesk:placeholder:font-medium"
)

// Weights lists the configured weights in stable order.
func Weights() []Weight {
	return []Weight{WeightRegular, WeightBold, WeightMedium}
}

// Placeholder returns the sentinel value for a weight.
func Placeholder(w Weight) string {
	switch w {
	case WeightRegular:
		return PlaceholderRegular
	case WeightBold:
		return PlaceholderBold
	case WeightMedium:
		return PlaceholderMedium
	default:
		return ""
	}
}

// Asset is one decoded, parse-checked font weight.
type Asset struct {
	Weight Weight
	Data   []byte
	Font   *sfnt.Font
}

// Table is the process-wide font table.
//
// A Table is immutable after Load and safe for concurrent reads.
type Table struct {
	assets map[Weight]Asset
}

// Asset returns the asset for a weight.
func (t *Table) Asset(w Weight) (Asset, bool) {
	if t == nil {
		return Asset{}, false
	}
	asset, ok := t.assets[w]
	return asset, ok
}

// Font returns the parsed font for a weight, or nil when absent.
func (t *Table) Font(w Weight) *sfnt.Font {
	asset, ok := t.Asset(w)
	if !ok {
		return nil
	}
	return asset.Font
}

// NewTable builds a table from decoded assets. Used by Load and by tests
// that supply font bytes directly.
func NewTable(assets ...Asset) (*Table, error) {
	table := &Table{assets: make(map[Weight]Asset, len(assets))}
	for _, asset := range assets {
		if Placeholder(asset.Weight) == "" {
			return nil, fmt.Errorf("unknown font weight %q", asset.Weight)
		}
		if asset.Font == nil {
			parsed, err := sfnt.Parse(asset.Data)
			if err != nil {
				return nil, fmt.Errorf("parse %s font: %w", asset.Weight, err)
			}
			asset.Font = parsed
		}
		table.assets[asset.Weight] = asset
	}
	return table, nil
}
