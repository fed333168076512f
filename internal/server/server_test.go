package server

import (
	"context"
	"testing"
	"time"

	"github.com/batasnatin/lexgate/internal/infra/config"
	"github.com/batasnatin/lexgate/internal/infra/sqlite"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host != "0.0.0.0" {
		t.Fatalf("Host = %q; want %q", cfg.Host, "0.0.0.0")
	}
	if cfg.Port != 8080 {
		t.Fatalf("Port = %d; want %d", cfg.Port, 8080)
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Fatalf("ReadTimeout = %v; want %v", cfg.ReadTimeout, 15*time.Second)
	}
	if cfg.WriteTimeout != 120*time.Second {
		t.Fatalf("WriteTimeout = %v; want %v", cfg.WriteTimeout, 120*time.Second)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Fatalf("IdleTimeout = %v; want %v", cfg.IdleTimeout, 60*time.Second)
	}
}

func TestNewServer_ConfiguresAddressAndHandler(t *testing.T) {
	db, err := sqlite.NewDB(":memory:")
	if err != nil {
		t.Fatalf("sqlite.NewDB error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("sqlite.MigrateUp error = %v", err)
	}

	appCfg := config.Config{
		IdentityBaseURL: "http://identity.local",
		IdentityAPIKey:  "anon-key",
		ProviderOrder:   config.DefaultProviderOrder(),
		QuotaPolicies:   config.DefaultQuotaPolicies(),
	}
	srv := NewServer(db, appCfg, Config{
		Host:         "127.0.0.1",
		Port:         9090,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		IdleTimeout:  time.Second,
	})

	if srv.http.Addr != "127.0.0.1:9090" {
		t.Fatalf("Addr = %q; want 127.0.0.1:9090", srv.http.Addr)
	}
	if srv.http.Handler == nil {
		t.Fatal("Handler is nil; router was not mounted")
	}
}

func TestShutdown_StopsBackgroundAndClosesDB(t *testing.T) {
	db, err := sqlite.NewDB(":memory:")
	if err != nil {
		t.Fatalf("sqlite.NewDB error = %v", err)
	}
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("sqlite.MigrateUp error = %v", err)
	}

	appCfg := config.Config{
		IdentityBaseURL: "http://identity.local",
		IdentityAPIKey:  "anon-key",
		ProviderOrder:   config.DefaultProviderOrder(),
		QuotaPolicies:   config.DefaultQuotaPolicies(),
	}
	srv := NewServer(db, appCfg, DefaultConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown error = %v", err)
	}

	if err := db.Ping(); err == nil {
		t.Error("database still open after Shutdown")
	}
}
