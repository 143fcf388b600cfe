package domain

import "context"

// Usuario represents a registered person in the padron.
// Telefono is stored in normalized form: digits plus an optional leading "+".
type Usuario struct {
	ID       int64
	Nombre   string
	Apellido string
	Telefono string
}

// UsuarioRepository defines persistence operations for usuarios.
type UsuarioRepository interface {
	Create(ctx context.Context, u *Usuario) error
	GetByTelefono(ctx context.Context, telefono string) (*Usuario, error)
	List(ctx context.Context) ([]Usuario, error)
}
