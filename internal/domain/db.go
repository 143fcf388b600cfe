package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation (SQLite, Postgres, etc.) owns its own migration
// files and strategy, ensuring the entire backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Session(ctx context.Context) (Session, error)
	Close() error
}

// Session is a unit of work scoped to a single request. It is bound to one
// pooled connection; callers must release it with Close on every exit path.
type Session interface {
	Usuarios() UsuarioRepository
	Close() error
}

// SessionProvider hands out sessions against the configured store.
// Implementations report ErrStoreUnavailable when no store is configured.
type SessionProvider interface {
	Session(ctx context.Context) (Session, error)
}
