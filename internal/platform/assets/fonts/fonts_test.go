package fonts

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"

	apperrors "github.com/louisbranch/formdesk/internal/platform/errors"
)

func TestPlaceholdersHoldSentinelValuesVerbatim(t *testing.T) {
	cases := []struct {
		weight Weight
		want   string
	}{
		{WeightRegular, "formdesk:placeholder:font-regular"},
		{WeightBold, "formdesk:placeholder:font-bold"},
		{WeightMedium, "formdesk:placeholder:font-medium"},
	}
	for _, tc := range cases {
		if got := Placeholder(tc.weight); got != tc.want {
			t.Errorf("Placeholder(%s) = %q, want %q", tc.weight, got, tc.want)
		}
	}
	if got := Placeholder(Weight("thin")); got != "" {
		t.Fatalf("expected empty placeholder for unknown weight, got %q", got)
	}
}

func TestDefaultConfigIsUnpopulated(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RegularData != PlaceholderRegular || cfg.BoldData != PlaceholderBold || cfg.MediumData != PlaceholderMedium {
		t.Fatal("default config should carry the sentinel placeholders")
	}
}

func TestLoadRejectsSentinelConfig(t *testing.T) {
	_, err := Load(DefaultConfig())
	if err == nil {
		t.Fatal("expected load of sentinel config to fail")
	}
	if apperrors.KindOf(err) != apperrors.KindConfig {
		t.Fatalf("expected config error kind, got %s", apperrors.KindOf(err))
	}
	if !strings.Contains(err.Error(), "regular") {
		t.Fatalf("expected error to name the weight, got %v", err)
	}
	if !strings.Contains(err.Error(), "placeholder") {
		t.Fatalf("expected error to mention the placeholder, got %v", err)
	}
}

func TestLoadRejectsMissingWeight(t *testing.T) {
	cfg := validConfig()
	cfg.MediumData = ""
	_, err := Load(cfg)
	if err == nil {
		t.Fatal("expected load without medium weight to fail")
	}
	if !strings.Contains(err.Error(), "medium") {
		t.Fatalf("expected error to name the missing weight, got %v", err)
	}
}

func TestLoadRejectsBadBase64(t *testing.T) {
	cfg := validConfig()
	cfg.BoldData = "not-base64!!"
	_, err := Load(cfg)
	if err == nil {
		t.Fatal("expected load with bad base64 to fail")
	}
	if apperrors.KindOf(err) != apperrors.KindConfig {
		t.Fatalf("expected config error kind, got %s", apperrors.KindOf(err))
	}
}

func TestLoadRejectsDataThatIsNotAFont(t *testing.T) {
	cfg := validConfig()
	cfg.RegularData = base64.StdEncoding.EncodeToString([]byte("clearly not a font"))
	_, err := Load(cfg)
	if err == nil {
		t.Fatal("expected load with non-font data to fail")
	}
	if !strings.Contains(err.Error(), "not a valid font") {
		t.Fatalf("expected parse failure message, got %v", err)
	}
}

func TestLoadDecodesConfiguredFonts(t *testing.T) {
	table, err := Load(validConfig())
	if err != nil {
		t.Fatalf("load valid config: %v", err)
	}
	for _, weight := range Weights() {
		asset, ok := table.Asset(weight)
		if !ok {
			t.Fatalf("missing %s asset", weight)
		}
		if len(asset.Data) == 0 {
			t.Fatalf("%s asset holds no data", weight)
		}
		if table.Font(weight) == nil {
			t.Fatalf("%s asset holds no parsed font", weight)
		}
	}
}

func TestLoadPrefersFilePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bold.ttf")
	if err := os.WriteFile(path, gobold.TTF, 0o600); err != nil {
		t.Fatalf("write font file: %v", err)
	}

	cfg := validConfig()
	cfg.BoldData = PlaceholderBold // ignored when a path is set
	cfg.BoldPath = path

	table, err := Load(cfg)
	if err != nil {
		t.Fatalf("load with font path: %v", err)
	}
	if table.Font(WeightBold) == nil {
		t.Fatal("expected bold font loaded from path")
	}
}

func TestLoadReportsUnreadablePath(t *testing.T) {
	cfg := validConfig()
	cfg.RegularPath = filepath.Join(t.TempDir(), "missing.ttf")
	_, err := Load(cfg)
	if err == nil {
		t.Fatal("expected load with missing font file to fail")
	}
	if apperrors.KindOf(err) != apperrors.KindConfig {
		t.Fatalf("expected config error kind, got %s", apperrors.KindOf(err))
	}
}

func TestNewTableRejectsUnknownWeight(t *testing.T) {
	_, err := NewTable(Asset{Weight: Weight("thin"), Data: goregular.TTF})
	if err == nil {
		t.Fatal("expected unknown weight to be rejected")
	}
}

func TestTableNilReads(t *testing.T) {
	var table *Table
	if _, ok := table.Asset(WeightRegular); ok {
		t.Fatal("nil table should report no assets")
	}
	if table.Font(WeightRegular) != nil {
		t.Fatal("nil table should report no fonts")
	}
}

func validConfig() Config {
	return Config{
		RegularData: base64.StdEncoding.EncodeToString(goregular.TTF),
		BoldData:    base64.StdEncoding.EncodeToString(gobold.TTF),
		MediumData:  base64.StdEncoding.EncodeToString(gomedium.TTF),
	}
}
