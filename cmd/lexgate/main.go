// lexgate - LLM provider-failover gateway for the BATASnatin legal assistant.
// Entry point.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/batasnatin/lexgate/internal/infra/config"
	"github.com/batasnatin/lexgate/internal/infra/sqlite"
	"github.com/batasnatin/lexgate/internal/server"
	"github.com/batasnatin/lexgate/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("lexgate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	port := fs.Int("port", 8080, "HTTP listen port (serve)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	if fs.Arg(0) == "serve" {
		// flag stops at the first non-flag argument, so pick up
		// options written after the command too.
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return 2
		}
		if err := serve(out, *port); err != nil {
			fmt.Fprintf(out, "lexgate: %v\n", err) //nolint:errcheck
			return 1
		}
		return 0
	}

	// Default: print version
	fmt.Fprintln(out, version.String()) //nolint:errcheck
	return 0
}

// serve loads configuration, migrates the database, and runs the gateway
// until an interrupt arrives.
func serve(out io.Writer, port int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := sqlite.MigrateUp(db); err != nil {
		db.Close() //nolint:errcheck
		return fmt.Errorf("migrate database: %w", err)
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Port = port
	srv := server.NewServer(db, cfg, srvCfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(context.Background())
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		fmt.Fprintf(out, "received %s\n", sig) //nolint:errcheck
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printHelp(out io.Writer) {
	helpText := `lexgate - LLM provider-failover gateway

Usage:
  lexgate [options] [command]

Options:
  --version    Show version information
  --help       Show this help message
  --port       HTTP listen port for serve (default 8080)

Commands:
  serve        Start the gateway

Environment:
  IDENTITY_BASE_URL         Identity service base URL (required)
  IDENTITY_API_KEY          Identity service API key (required)
  GEMINI_API_KEY            Gemini credential (optional)
  DEEPSEEK_API_KEY          DeepSeek credential (optional)
  OPENAI_API_KEY            OpenAI credential (optional)
  PROVIDER_TIMEOUT_SECONDS  Per-provider attempt budget (default 30)
  LEXGATE_DB_PATH           SQLite database path (default lexgate.db)
  LEXGATE_CONFIG            Optional YAML overlay file

Examples:
  lexgate --version
  lexgate serve --port 8080`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
