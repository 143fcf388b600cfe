package handler

import (
	"net/http"
)

// APIPrefix is the mount point for versioned resource routes.
const APIPrefix = "/api/v1"

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, usuarios *UsuarioHandler, metrics http.Handler) {
	mux.HandleFunc("POST "+APIPrefix+"/users", usuarios.Create)
	mux.HandleFunc("GET "+APIPrefix+"/users", usuarios.List)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /{$}", HandleHome)

	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}
