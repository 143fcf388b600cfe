package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bonube/padron/internal/domain"
	"github.com/bonube/padron/internal/repository/sqlite"
)

// Verify that *sqlite.DB implements domain.Database at compile time.
var _ domain.Database = (*sqlite.DB)(nil)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	// Verify the file was created.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file was not created")
	}

	// Verify we can ping the database.
	if err := db.SqlDB.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}

	// Verify foreign keys are enabled.
	var fkEnabled int
	if err := db.SqlDB.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("check foreign_keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fkEnabled)
	}
}

func TestNew_LegacyScheme(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "legacy.db")

	// A DSN carrying the legacy scheme prefix must be normalized to a path.
	db, err := sqlite.New("sqlite://" + dbPath)
	if err != nil {
		t.Fatalf("New with sqlite:// prefix: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file was not created at the normalized path")
	}
}

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"sqlite:///tmp/app.db", "/tmp/app.db"},
		{"sqlite3:///tmp/app.db", "/tmp/app.db"},
		{"file:app.db?mode=memory", "file:app.db?mode=memory"},
		{"app.db", "app.db"},
	}
	for _, c := range cases {
		if got := sqlite.NormalizeDSN(c.in); got != c.want {
			t.Errorf("NormalizeDSN(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMigrate(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Run migrations through the Database interface.
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Verify the usuarios table exists by inserting a row.
	_, err = db.SqlDB.ExecContext(ctx,
		"INSERT INTO usuarios (nombre, apellido, telefono) VALUES (?, ?, ?)",
		"Ana", "García", "5551234567",
	)
	if err != nil {
		t.Fatalf("insert into usuarios: %v", err)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Run migrations twice; second run should be a no-op.
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("first Migrate: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate (idempotent): %v", err)
	}

	// Verify only one migration entry exists.
	var count int
	err = db.SqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 migration record, got %d", count)
	}
}

func TestUniqueIndexEnforced(t *testing.T) {
	tmpDir := t.TempDir()
	db, err := sqlite.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Insert the same telefono twice directly; the index must reject it
	// regardless of any application-level check.
	_, err = db.SqlDB.ExecContext(ctx,
		"INSERT INTO usuarios (nombre, apellido, telefono) VALUES (?, ?, ?)",
		"Ana", "García", "5551234567")
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err = db.SqlDB.ExecContext(ctx,
		"INSERT INTO usuarios (nombre, apellido, telefono) VALUES (?, ?, ?)",
		"Luis", "Pérez", "5551234567")
	if err == nil {
		t.Fatal("expected unique constraint violation on duplicate telefono")
	}
}
