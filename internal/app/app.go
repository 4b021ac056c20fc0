package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/floorsheet/config"
	"github.com/guttosm/floorsheet/internal/api"
	"github.com/guttosm/floorsheet/internal/service"
	"github.com/guttosm/floorsheet/internal/storage"
)

// InitializeApp sets up all API dependencies and returns a fully configured
// Gin router, a cleanup function for graceful shutdown, and any error
// encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL and applies migrations (OpenStore).
//   - Wires repository, service and HTTP handler layers.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	db, repo, err := OpenStore(config.AppConfig)
	if err != nil {
		return nil, nil, err
	}

	svc := service.NewFloorSheetService(repo)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(db.PingContext)
	healthHandler.Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}

// OpenStore connects to PostgreSQL, applies migrations and returns the
// repository over the connection. The caller closes the *sql.DB.
func OpenStore(cfg config.Config) (*sql.DB, storage.FloorSheetRepository, error) {
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, storage.NewFloorSheetRepository(db), nil
}
