package server

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.HTTPAddr != defaultHTTPAddr {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, defaultHTTPAddr)
	}
	if cfg.DBPath != defaultDBPath {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, defaultDBPath)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("FORMDESK_HTTP_ADDR", "localhost:9999")
	t.Setenv("FORMDESK_DB_PATH", "/tmp/env.db")
	t.Setenv("FORMDESK_SESSION_SECRET", "a-long-enough-secret")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "/tmp/flag.db"})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.HTTPAddr != "localhost:9999" {
		t.Fatalf("HTTPAddr = %q, want env value", cfg.HTTPAddr)
	}
	if cfg.DBPath != "/tmp/flag.db" {
		t.Fatalf("DBPath = %q, want flag value", cfg.DBPath)
	}
	if cfg.Auth.SessionSecret != "a-long-enough-secret" {
		t.Fatalf("SessionSecret not read from env")
	}
}
