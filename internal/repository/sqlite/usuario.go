package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bonube/padron/internal/domain"
)

// querier is satisfied by both *sql.DB and *sql.Conn so repositories work
// against the shared pool or a per-request session.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UsuarioRepository implements domain.UsuarioRepository using SQLite.
type UsuarioRepository struct {
	db querier
}

// NewUsuarioRepository creates a new SQLite-backed UsuarioRepository.
func NewUsuarioRepository(db *DB) *UsuarioRepository {
	return &UsuarioRepository{db: db.SqlDB}
}

func (r *UsuarioRepository) Create(ctx context.Context, u *domain.Usuario) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO usuarios (nombre, apellido, telefono) VALUES (?, ?, ?)`,
		u.Nombre, u.Apellido, u.Telefono,
	)
	if err != nil {
		// The unique index is the authoritative duplicate guard; a
		// concurrent insert can slip past the service-level pre-check.
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateTelefono
		}
		return fmt.Errorf("insert usuario: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	u.ID = id
	return nil
}

func (r *UsuarioRepository) GetByTelefono(ctx context.Context, telefono string) (*domain.Usuario, error) {
	u := &domain.Usuario{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nombre, apellido, telefono FROM usuarios WHERE telefono = ?`, telefono,
	).Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Telefono)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query usuario by telefono: %w", err)
	}
	return u, nil
}

func (r *UsuarioRepository) List(ctx context.Context) ([]domain.Usuario, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, nombre, apellido, telefono FROM usuarios ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query usuarios: %w", err)
	}
	defer rows.Close()

	var usuarios []domain.Usuario
	for rows.Next() {
		var u domain.Usuario
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Telefono); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "unique constraint"))
}
