package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bonube/padron/internal/domain"
	"github.com/bonube/padron/internal/repository/postgres/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB is the Postgres-backed implementation of domain.Database, using the
// pgx driver through database/sql.
type DB struct {
	SqlDB *sql.DB
}

// NormalizeDSN rewrites legacy connection-string scheme prefixes to the
// "postgres://" scheme pgx expects. DSNs copied from older deployments
// arrive as "postgresql+psycopg://".
func NormalizeDSN(dsn string) string {
	for _, prefix := range []string{"postgresql+psycopg2://", "postgresql+psycopg://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "postgres://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// New opens a connection pool against the given DSN and verifies it with a ping.
func New(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("pgx", NormalizeDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Modest pool limits; the service holds one connection per in-flight request.
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)

	if err := db.PingContext(ctx); err != nil {
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
