package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bonube/padron/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE Postgres reports for unique-index conflicts.
const uniqueViolation = "23505"

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UsuarioRepository implements domain.UsuarioRepository using Postgres.
type UsuarioRepository struct {
	db querier
}

// NewUsuarioRepository creates a new Postgres-backed UsuarioRepository.
func NewUsuarioRepository(db *DB) *UsuarioRepository {
	return &UsuarioRepository{db: db.SqlDB}
}

func (r *UsuarioRepository) Create(ctx context.Context, u *domain.Usuario) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO usuarios (nombre, apellido, telefono) VALUES ($1, $2, $3) RETURNING id`,
		u.Nombre, u.Apellido, u.Telefono,
	).Scan(&u.ID)
	if err != nil {
		// The unique index is the authoritative duplicate guard; a
		// concurrent insert can slip past the service-level pre-check.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateTelefono
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepository) GetByTelefono(ctx context.Context, telefono string) (*domain.Usuario, error) {
	u := &domain.Usuario{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nombre, apellido, telefono FROM usuarios WHERE telefono = $1`, telefono,
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
