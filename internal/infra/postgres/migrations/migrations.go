package migrations

import "github.com/uptrace/bun/migrate"

// Migrations is the registry every numbered migration file adds itself to.
var Migrations = migrate.NewMigrations()
