package handler

import (
	"net/http"
)

// HandleHome responds at the root path so load balancers and humans get
// something other than a 404.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
