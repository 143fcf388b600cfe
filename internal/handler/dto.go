package handler

import "github.com/bonube/padron/internal/domain"

// CreateUsuarioRequest is the JSON body for POST /api/v1/users.
type CreateUsuarioRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Telefono string `json:"telefono"`
}

// UsuarioDTO is the JSON representation of a usuario.
type UsuarioDTO struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Telefono string `json:"telefono"`
}

func toUsuarioDTO(u *domain.Usuario) UsuarioDTO {
	return UsuarioDTO{
		ID:       u.ID,
		Nombre:   u.Nombre,
		Apellido: u.Apellido,
		Telefono: u.Telefono,
	}
}

func toUsuarioDTOs(usuarios []domain.Usuario) []UsuarioDTO {
	dtos := make([]UsuarioDTO, len(usuarios))
	for i := range usuarios {
		dtos[i] = toUsuarioDTO(&usuarios[i])
	}
	return dtos
}
