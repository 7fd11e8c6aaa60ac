package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// versionTable tabla donde tern registra la versión del esquema.
const versionTable = "public.schema_version"

// newMigrator carga las migraciones embebidas. Con conn nil solo se validan (sin tocar la base).
func newMigrator(ctx context.Context, conn *pgx.Conn) (*migrate.Migrator, error) {
	m, err := migrate.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return nil, fmt.Errorf("crear migrator: %w", err)
	}
	files, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}
	if err := m.LoadMigrations(files); err != nil {
		return nil, fmt.Errorf("cargar migraciones: %w", err)
	}
	return m, nil
}

// Migrate aplica las migraciones pendientes en orden. tern toma un advisory lock de sesión,
// así que varias instancias arrancando a la vez no se pisan.
// Devuelve los nombres de las migraciones aplicadas en esta ejecución.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("adquirir conexión: %w", err)
	}
	defer conn.Release()

	m, err := newMigrator(ctx, conn.Conn())
	if err != nil {
		return nil, err
	}
	var applied []string
	m.OnStart = func(_ int32, name, direction, _ string) {
		if direction == "up" {
			applied = append(applied, name)
		}
	}
	if err := m.Migrate(ctx); err != nil {
		return applied, fmt.Errorf("aplicar migraciones: %w", err)
	}
	return applied, nil
}
