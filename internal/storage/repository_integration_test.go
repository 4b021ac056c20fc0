//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	schema "github.com/guttosm/floorsheet/db"
	"github.com/guttosm/floorsheet/internal/domain/models"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "floorsheet",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=floorsheet sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "floorsheet")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	goose.SetBaseFS(schema.Migrations)
	t.Cleanup(func() { goose.SetBaseFS(nil) })
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	if err := goose.Up(db, schema.MigrationsDir); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func TestRepository_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	repo := NewFloorSheetRepository(db)
	started := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

	older := models.Run{ID: uuid.New(), StartedAt: started.Add(-24 * time.Hour), Status: models.RunStatusCompleted}
	latest := models.Run{ID: uuid.New(), StartedAt: started, Status: models.RunStatusRunning, TradingDate: started}
	failed := models.Run{ID: uuid.New(), StartedAt: started.Add(time.Hour), Status: models.RunStatusFailed, Error: "navigation failed"}

	for _, r := range []models.Run{older, latest, failed} {
		if err := repo.UpsertRun(r); err != nil {
			t.Fatalf("upsert run: %v", err)
		}
	}

	rec := func(sn, symbol, qty, rate, amount string) models.Record {
		return models.Record{SN: sn, ContractNo: "C" + sn, StockSymbol: symbol, Buyer: "58", Seller: "42", Quantity: qty, Rate: rate, Amount: amount}
	}
	if err := repo.InsertRecordsBatch(older.ID, 1, []models.Record{rec("1", "NABIL", "10", "400", "4000")}); err != nil {
		t.Fatalf("insert older: %v", err)
	}
	if err := repo.InsertRecordsBatch(latest.ID, 1, []models.Record{
		rec("1", "NABIL", "10", "500", "5000"),
		rec("2", "NABIL", "30", "520", "15600"),
		rec("3", "NICA", "5", "800", "4000"),
	}); err != nil {
		t.Fatalf("insert page 1: %v", err)
	}
	if err := repo.InsertRecordsBatch(latest.ID, 2, []models.Record{rec("4", "NABIL", "bad", "510", "")}); err != nil {
		t.Fatalf("insert page 2: %v", err)
	}

	latest.Status = models.RunStatusCompleted
	latest.FinishedAt = started.Add(5 * time.Minute)
	latest.TotalPages, latest.PagesProcessed, latest.Records = 2, 2, 4
	if err := repo.UpsertRun(latest); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	t.Run("list runs newest first", func(t *testing.T) {
		runs, err := repo.ListRuns(10)
		if err != nil {
			t.Fatalf("ListRuns: %v", err)
		}
		if len(runs) != 3 || runs[0].ID != failed.ID || runs[1].ID != latest.ID || runs[2].ID != older.ID {
			t.Fatalf("unexpected order: %+v", runs)
		}
		if runs[1].Status != models.RunStatusCompleted || runs[1].Records != 4 || runs[1].FinishedAt.IsZero() {
			t.Fatalf("upsert did not update run: %+v", runs[1])
		}
	})

	cases := []struct {
		name       string
		symbol     string
		runID      *uuid.UUID
		wantNil    bool
		wantTrades int64
		wantQty    float64
		wantMax    float64
	}{
		{name: "latest completed run", symbol: "NABIL", wantTrades: 3, wantQty: 40, wantMax: 520},
		{name: "explicit older run", symbol: "NABIL", runID: &older.ID, wantTrades: 1, wantQty: 10, wantMax: 400},
		{name: "failed run has no rows", symbol: "NABIL", runID: &failed.ID, wantNil: true},
		{name: "unknown symbol", symbol: "ZZZ", wantNil: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sum, err := repo.GetSymbolSummary(tc.symbol, tc.runID)
			if err != nil {
				t.Fatalf("GetSymbolSummary: %v", err)
			}
			if tc.wantNil {
				if sum != nil {
					t.Fatalf("want nil, got %+v", sum)
				}
				return
			}
			if sum == nil || sum.Trades != tc.wantTrades || sum.TotalQuantity != tc.wantQty || sum.MaxRate != tc.wantMax {
				t.Fatalf("unexpected summary %+v", sum)
			}
		})
	}
}
