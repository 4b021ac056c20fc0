// Package db embeds the goose migrations for the floor-sheet schema.
package db

import "embed"

// Migrations holds migrations/*.sql; goose reads them with SetBaseFS.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations passed to goose.
const MigrationsDir = "migrations"
