package main

//
//  @title           floorsheet API
//  @version         1.0
//  @description     NEPSE floor-sheet extraction run log and symbol summaries.
//  @termsOfService  https://github.com/guttosm/floorsheet
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/floorsheet
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        runs
//  @tag.description Extraction run log
//
//  @tag.name        symbols
//  @tag.description Per-symbol aggregates over a run
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/floorsheet/config"
	_ "github.com/guttosm/floorsheet/docs" // swagger docs
	"github.com/guttosm/floorsheet/internal/app"
	"github.com/guttosm/floorsheet/internal/browser"
	"github.com/guttosm/floorsheet/internal/extraction"
	"github.com/guttosm/floorsheet/internal/logger"
)

// shutdownTimeout bounds the drain of in-flight requests.
const shutdownTimeout = 10 * time.Second

var (
	launchBrowser = func(ctx context.Context, opts browser.Options) (browser.Page, error) {
		return browser.Launch(ctx, opts)
	}
	openStore = app.OpenStore
)

// newServer builds the HTTP server for API mode.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
func newServer(router http.Handler, port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// serve runs server until ctx is canceled or the listener fails, then shuts
// it down gracefully and calls cleanup.
//
// Parameters:
//   - ctx (context.Context): canceled on SIGINT/SIGTERM.
//   - server (*http.Server): The HTTP server instance to run.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func serve(ctx context.Context, server *http.Server, cleanup func()) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.L().Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.L().Info().Msg("shutting down server")
		defer cleanup()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		logger.L().Info().Msg("server exited gracefully")
		return nil
	})

	return g.Wait()
}

func browserOptions(cfg config.Config) browser.Options {
	return browser.Options{
		Headless:      cfg.Browser.Headless,
		WindowWidth:   cfg.Browser.WindowWidth,
		WindowHeight:  cfg.Browser.WindowHeight,
		UserAgent:     cfg.Browser.UserAgent,
		ActionTimeout: cfg.Scrape.WaitTimeout,
		LoadTimeout:   cfg.Scrape.NavigationTimeout,
	}
}

// runScrape performs one extraction session. The browser is closed on every
// path, including failures and cancellation.
func runScrape(ctx context.Context, cfg config.Config) error {
	var store func(*extraction.Scraper)
	if cfg.Postgres.Enabled {
		db, repo, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		store = func(s *extraction.Scraper) { s.WithRepository(repo) }
	}

	page, err := launchBrowser(ctx, browserOptions(cfg))
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			logger.L().Warn().Err(err).Msg("close browser")
		}
	}()

	adapter := extraction.NewNepseAdapter(page, extraction.DefaultSelectors(), cfg.Scrape.WaitTimeout)
	scraper := extraction.NewScraper(adapter, extraction.Options{
		URL:                cfg.Scrape.URL,
		PageSize:           cfg.Scrape.PageSize,
		FallbackTotalPages: cfg.Scrape.FallbackTotalPages,
		OutputDir:          cfg.Scrape.OutputDir,
	}, *logger.L())
	if store != nil {
		store(scraper)
	}

	_, err = scraper.Run(ctx)
	return err
}

// main is the entry point of the floorsheet application.
//
// Modes (selected via --mode flag):
//   - scrape:  Extracts today's floor sheet into a dated CSV file.
//   - api:     Starts the REST API over the mirrored run log and records.
//   - migrate: Applies database migrations and exits.
//
// Flags:
//   - --mode: Execution mode ("scrape", "api" or "migrate"). Default: "scrape".
//   - --out:  Directory for the CSV file. Defaults to FLOORSHEET_OUTPUT_DIR.
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	mode := flag.String("mode", "scrape", "Mode: scrape, api or migrate")
	out := flag.String("out", config.AppConfig.Scrape.OutputDir, "Directory for the CSV output")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "scrape":
		cfg := config.AppConfig
		cfg.Scrape.OutputDir = *out
		if err := runScrape(ctx, cfg); err != nil {
			logger.L().Error().Err(err).Msg("error scraping data")
			stop()
			os.Exit(1)
		}

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		if err := serve(ctx, newServer(router, *port), cleanup); err != nil {
			logger.L().Fatal().Err(err).Msg("server error")
		}

	case "migrate":
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()
		if err := app.Migrate(db); err != nil {
			logger.L().Fatal().Err(err).Msg("migration failed")
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
