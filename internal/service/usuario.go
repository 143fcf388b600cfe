package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bonube/padron/internal/domain"
)

const (
	maxNombreLen   = 120
	minTelefonoLen = 7
	maxTelefonoLen = 32
)

// UsuarioService handles creation and listing of usuarios.
type UsuarioService struct {
	store domain.SessionProvider
}

// NewUsuarioService creates a new UsuarioService.
func NewUsuarioService(store domain.SessionProvider) *UsuarioService {
	return &UsuarioService{store: store}
}

// NormalizarTelefono reduces a phone string to digits plus an optional
// leading "+". Spaces, dashes, parentheses and any other characters are
// dropped. The function is idempotent.
func NormalizarTelefono(telefono string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(telefono) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Create validates and normalizes the input, checks for an existing telefono
// and persists a new usuario. Validation happens before any store access.
//
// The duplicate lookup is advisory only: two concurrent creates can both pass
// it, and the store's unique index decides the loser, which surfaces as the
// same domain.ErrDuplicateTelefono.
func (s *UsuarioService) Create(ctx context.Context, nombre, apellido, telefono string) (*domain.Usuario, error) {
	nombre = strings.TrimSpace(nombre)
	apellido = strings.TrimSpace(apellido)

	if n := utf8.RuneCountInString(nombre); n == 0 || n > maxNombreLen {
		return nil, fmt.Errorf("%w: nombre must be 1-%d characters", domain.ErrInvalidInput, maxNombreLen)
	}
	if n := utf8.RuneCountInString(apellido); n == 0 || n > maxNombreLen {
		return nil, fmt.Errorf("%w: apellido must be 1-%d characters", domain.ErrInvalidInput, maxNombreLen)
	}

	tel := NormalizarTelefono(telefono)
	if len(tel) < minTelefonoLen || len(tel) > maxTelefonoLen {
		return nil, fmt.Errorf("%w: telefono must be %d-%d characters after normalization",
			domain.ErrInvalidInput, minTelefonoLen, maxTelefonoLen)
	}

	sess, err := s.store.Session(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	usuarios := sess.Usuarios()
	if _, err := usuarios.GetByTelefono(ctx, tel); err == nil {
		return nil, domain.ErrDuplicateTelefono
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check telefono: %w", err)
	}

	u := &domain.Usuario{
		Nombre:   nombre,
		Apellido: apellido,
		Telefono: tel,
	}
	if err := usuarios.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateTelefono) {
			return nil, err
		}
		return nil, fmt.Errorf("create usuario: %w", err)
	}

	return u, nil
}

// List returns all usuarios, most recently created first.
func (s *UsuarioService) List(ctx context.Context) ([]domain.Usuario, error) {
	sess, err := s.store.Session(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	usuarios, err := sess.Usuarios().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	return usuarios, nil
}
