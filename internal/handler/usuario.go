package handler

import (
	"net/http"

	"github.com/bonube/padron/internal/service"
)

// UsuarioHandler serves the /users resource.
type UsuarioHandler struct {
	usuarios *service.UsuarioService
}

// NewUsuarioHandler creates a new UsuarioHandler.
func NewUsuarioHandler(usuarios *service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{usuarios: usuarios}
}

// Create handles POST /api/v1/users.
func (h *UsuarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUsuarioRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid JSON body")
		return
	}

	u, err := h.usuarios.Create(r.Context(), req.Nombre, req.Apellido, req.Telefono)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUsuarioDTO(u))
}

// List handles GET /api/v1/users, newest first.
func (h *UsuarioHandler) List(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.usuarios.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUsuarioDTOs(usuarios))
}
