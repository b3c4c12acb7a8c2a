// Package server wires configuration into the account portal process.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/louisbranch/formdesk/internal/docgen"
	"github.com/louisbranch/formdesk/internal/platform/assets/fonts"
	"github.com/louisbranch/formdesk/internal/platform/config"
	"github.com/louisbranch/formdesk/internal/platform/otel"
	"github.com/louisbranch/formdesk/internal/services/auth"
	"github.com/louisbranch/formdesk/internal/services/auth/mailer"
	authsqlite "github.com/louisbranch/formdesk/internal/services/auth/storage/sqlite"
	"github.com/louisbranch/formdesk/internal/services/web"
)

const (
	defaultHTTPAddr = "localhost:8090"
	defaultDBPath   = "formdesk.db"
)

// Config holds the server command configuration.
type Config struct {
	HTTPAddr string `env:"FORMDESK_HTTP_ADDR"`
	DBPath   string `env:"FORMDESK_DB_PATH"`

	Auth  auth.Config
	Fonts fonts.Config
}

// ParseConfig parses env and flags into a Config. Flags win over env.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		HTTPAddr: defaultHTTPAddr,
		DBPath:   defaultDBPath,
		Fonts:    fonts.DefaultConfig(),
	}
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run assembles the portal and serves it until the context ends.
//
// Font loading happens before the listener binds so a misconfigured weight
// stops the process instead of surfacing later as a broken document.
func Run(ctx context.Context, cfg Config) error {
	table, err := fonts.Load(cfg.Fonts)
	if err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}
	renderer, err := docgen.New(table)
	if err != nil {
		return fmt.Errorf("init document renderer: %w", err)
	}

	shutdownTracing, err := otel.Setup(ctx, "formdesk-server")
	if err != nil {
		log.Printf("tracing disabled: %v", err)
	} else if shutdownTracing != nil {
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				log.Printf("shutdown tracing: %v", err)
			}
		}()
	}

	store, err := authsqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	authSvc, err := auth.New(store, mailer.NewOutbox(store), cfg.Auth)
	if err != nil {
		return fmt.Errorf("init auth service: %w", err)
	}

	server, err := web.NewServer(cfg.HTTPAddr, authSvc, renderer)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
