package securestore

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/casedesk/internal/client/migrations"
	"github.com/dmitrijs2005/casedesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/casedesk/internal/filex"
	"github.com/dmitrijs2005/casedesk/internal/logging"

	_ "modernc.org/sqlite"
)

// DatabaseFile is the SQLite file created inside the data directory.
const DatabaseFile = "casedesk.db"

// RunMigrations applies the embedded goose migrations to db. Re-running is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	p, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// OpenSQLite opens (or creates) the sealed credential store in dataDir.
// The directory is created with owner-only permissions and holds both the
// database and the device key; nothing in it is meant to leave the device.
func OpenSQLite(ctx context.Context, dataDir string, log logging.Logger) (*SealedStore, error) {
	dir, err := filex.EnsureDir(dataDir, 0o700)
	if err != nil {
		return nil, err
	}

	key, err := LoadDeviceKey(dir)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, DatabaseFile))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := NewSealed(metadata.NewSQLiteRepository(db), key, log)
	s.closer = db
	return s, nil
}
