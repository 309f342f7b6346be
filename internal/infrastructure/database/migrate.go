package database

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// RunMigrations applies all pending embedded migrations.
func RunMigrations(dsn string) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info().Uint("version", uint(version)).Bool("dirty", dirty).Msg("migrations applied")
	return nil
}

// Schema returns the full embedded schema, for the -sql dump flag.
func Schema() string {
	entries, err := fs.Glob(migrationFS, "migrations/*.up.sql")
	if err != nil {
		return ""
	}
	sort.Strings(entries)
	var b strings.Builder
	for _, name := range entries {
		data, err := migrationFS.ReadFile(name)
		if err != nil {
			continue
		}
		b.WriteString("-- ")
		b.WriteString(strings.TrimPrefix(name, "migrations/"))
		b.WriteString("\n")
		b.Write(data)
		b.WriteString("\n")
	}
	return b.String()
}
