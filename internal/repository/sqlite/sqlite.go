package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bonube/padron/internal/domain"
	"github.com/bonube/padron/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB is the SQLite-backed implementation of domain.Database.
type DB struct {
	SqlDB *sql.DB
}

// NormalizeDSN strips legacy connection-string scheme prefixes so the DSN
// matches what the modernc driver expects. "sqlite://path" and
// "sqlite3://path" become "path"; "file:" URIs and bare paths pass through.
func NormalizeDSN(dsn string) string {
	for _, prefix := range []string{"sqlite3://", "sqlite://"} {
		if strings.HasPrefix(dsn, prefix) {
			return strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// New opens a SQLite database for the given DSN and configures it for use.
// It enables WAL mode and foreign keys.
func New(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", NormalizeDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Set a reasonable connection pool for SQLite.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies all pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB)
}

// Session checks out a dedicated connection for one request.
func (d *DB) Session(ctx context.Context) (domain.Session, error) {
	conn, err := d.SqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &session{conn: conn}, nil
}

// Usuarios returns a repository bound to the shared pool rather than a
// per-request session. Intended for wiring and tests.
func (d *DB) Usuarios() domain.UsuarioRepository {
	return &UsuarioRepository{db: d.SqlDB}
}

// Close releases the underlying pool.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

type session struct {
	conn *sql.Conn
}

func (s *session) Usuarios() domain.UsuarioRepository {
	return &UsuarioRepository{db: s.conn}
}

func (s *session) Close() error {
	return s.conn.Close()
}
