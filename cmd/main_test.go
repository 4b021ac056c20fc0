package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/floorsheet/config"
	"github.com/guttosm/floorsheet/internal/browser"
	"github.com/guttosm/floorsheet/internal/browser/browsertest"
	"github.com/guttosm/floorsheet/internal/extraction"
	"github.com/guttosm/floorsheet/internal/storage"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func scrapeConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Scrape: config.ScrapeConfig{
			URL:                "https://nepalstock.com.np/floor-sheet",
			PageSize:           "500",
			FallbackTotalPages: 2,
			WaitTimeout:        time.Second,
			NavigationTimeout:  time.Second,
			OutputDir:          t.TempDir(),
		},
		Browser: config.BrowserConfig{Headless: true},
	}
}

func stubBrowser(t *testing.T, page *browsertest.Page, err error) *browser.Options {
	t.Helper()
	var got browser.Options
	orig := launchBrowser
	launchBrowser = func(_ context.Context, opts browser.Options) (browser.Page, error) {
		got = opts
		if err != nil {
			return nil, err
		}
		return page, nil
	}
	t.Cleanup(func() { launchBrowser = orig })
	return &got
}

func floorSheetPage(rows ...[]string) string {
	return "<html><body>" + browsertest.Table([]string{"SN", "Contract No"}, rows...) + "</body></html>"
}

func csvFiles(t *testing.T, dir string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "*-floor-data.csv"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	return files
}

func TestRunScrape_WritesCSVAndClosesBrowser(t *testing.T) {
	cfg := scrapeConfig(t)
	page := browsertest.New(extraction.DefaultSelectors().NextPage,
		floorSheetPage([]string{"1", "C1", "NABIL", "12", "34", "10", "500", "5,000"}),
		floorSheetPage([]string{"2", "C2", "NICA", "56", "78", "20", "800", "16,000"}),
	)
	opts := stubBrowser(t, page, nil)

	if err := runScrape(context.Background(), cfg); err != nil {
		t.Fatalf("runScrape: %v", err)
	}
	if !page.Closed {
		t.Fatalf("browser not closed")
	}
	if opts.ActionTimeout != time.Second || !opts.Headless {
		t.Fatalf("unexpected browser options: %+v", *opts)
	}

	files := csvFiles(t, cfg.Scrape.OutputDir)
	if len(files) != 1 {
		t.Fatalf("expected one csv file, got %v", files)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := strings.Join(extraction.Header, ",") + "\n" +
		"1,C1,NABIL,12,34,10,500,5000\n" +
		"2,C2,NICA,56,78,20,800,16000\n"
	if string(data) != want {
		t.Fatalf("unexpected csv:\n%s", data)
	}
}

func TestRunScrape_SortFailureClosesBrowser(t *testing.T) {
	cfg := scrapeConfig(t)
	page := browsertest.New(extraction.DefaultSelectors().NextPage, floorSheetPage())
	page.Missing = map[string]bool{extraction.DefaultSelectors().SortByRate: true}
	stubBrowser(t, page, nil)

	err := runScrape(context.Background(), cfg)
	if !errors.Is(err, browser.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	var navErr *extraction.NavigationError
	if !errors.As(err, &navErr) || navErr.Step != extraction.StepSort {
		t.Fatalf("expected sort navigation error, got %v", err)
	}
	if !page.Closed {
		t.Fatalf("browser not closed after failure")
	}
	if files := csvFiles(t, cfg.Scrape.OutputDir); len(files) != 0 {
		t.Fatalf("no output expected before pagination, got %v", files)
	}
}

func TestRunScrape_LaunchError(t *testing.T) {
	stubBrowser(t, nil, errors.New("no chrome"))

	err := runScrape(context.Background(), scrapeConfig(t))
	if err == nil || !strings.Contains(err.Error(), "launch browser") {
		t.Fatalf("expected launch error, got %v", err)
	}
}

func TestRunScrape_StoreErrorSkipsBrowser(t *testing.T) {
	cfg := scrapeConfig(t)
	cfg.Postgres.Enabled = true

	launched := false
	orig := launchBrowser
	launchBrowser = func(context.Context, browser.Options) (browser.Page, error) {
		launched = true
		return nil, errors.New("unexpected")
	}
	origStore := openStore
	openStore = func(config.Config) (*sql.DB, storage.FloorSheetRepository, error) {
		return nil, nil, errors.New("db down")
	}
	t.Cleanup(func() {
		launchBrowser = orig
		openStore = origStore
	})

	if err := runScrape(context.Background(), cfg); err == nil || err.Error() != "db down" {
		t.Fatalf("expected store error, got %v", err)
	}
	if launched {
		t.Fatalf("browser must not start when the store is unavailable")
	}
}

func TestServe_ShutdownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cleaned := make(chan struct{})
	done := make(chan error, 1)

	go func() { done <- serve(ctx, newServer(dummyHandler{}, "0"), func() { close(cleaned) }) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("serve did not return after cancel")
	}
	select {
	case <-cleaned:
	default:
		t.Fatalf("cleanup not called")
	}
}

func TestServe_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer func() { _ = ln.Close() }()
	_, port, _ := net.SplitHostPort(ln.Addr().String())

	cleaned := false
	err = serve(context.Background(), newServer(dummyHandler{}, port), func() { cleaned = true })
	if err == nil || !strings.Contains(err.Error(), "server failed to start") {
		t.Fatalf("expected listen error, got %v", err)
	}
	if !cleaned {
		t.Fatalf("cleanup not called")
	}
}
