// Package repository selects and lazily opens the configured store backend.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bonube/padron/internal/domain"
	"github.com/bonube/padron/internal/repository/postgres"
	"github.com/bonube/padron/internal/repository/sqlite"
)

// Open connects to the store the DSN points at. The backend is chosen by
// scheme: postgres-family prefixes go to pgx, everything else to SQLite.
func Open(ctx context.Context, dsn string) (domain.Database, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"),
		strings.HasPrefix(dsn, "postgresql+psycopg://"),
		strings.HasPrefix(dsn, "postgresql+psycopg2://"):
		return postgres.New(ctx, dsn)
	default:
		return sqlite.New(dsn)
	}
}

// Provider hands out per-request sessions against a lazily opened store.
//
// The DSN is captured once at construction; the store itself is not opened
// until the first session is requested. An empty DSN never crashes the
// process: every session request reports domain.ErrStoreUnavailable instead.
type Provider struct {
	dsn string

	mu sync.Mutex
	db domain.Database
}

// NewProvider creates a Provider for the given DSN. An empty DSN is allowed.
func NewProvider(dsn string) *Provider {
	return &Provider{dsn: dsn}
}

// Session opens the store on first use (connect plus idempotent migration)
// and checks out a session. Callers must Close the session on every path.
func (p *Provider) Session(ctx context.Context) (domain.Session, error) {
	db, err := p.database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Session(ctx)
}

func (p *Provider) database(ctx context.Context) (domain.Database, error) {
	if p.dsn == "" {
		return nil, domain.ErrStoreUnavailable
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}

	// Failures are not memoized: the next request retries the open, the
	// same way the store would be retried after a transient outage.
	db, err := Open(ctx, p.dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	slog.Info("store ready")
	p.db = db
	return p.db, nil
}

// Close releases the store if it was ever opened.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
