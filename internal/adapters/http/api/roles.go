package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/pathwise/internal/domain/compensation"
)

// RolesHandler serves the compensation dataset.
type RolesHandler struct {
	deps RoleDependencies
}

// NewRolesHandler creates a new roles handler.
func NewRolesHandler(deps RoleDependencies) *RolesHandler {
	return &RolesHandler{deps: deps}
}

type roleResponse struct {
	compensation.Profile
	Known bool `json:"known"`
}

// HandleListRoles handles GET /roles requests.
func (h *RolesHandler) HandleListRoles(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_roles"
	if r.Method != http.MethodGet {
		writeNotFound(w, op)
		return
	}
	roles, err := h.deps.Roles(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

// HandleGetRole handles GET /roles/{name} requests. Unknown roles return
// the placeholder profile with known=false.
func (h *RolesHandler) HandleGetRole(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_role"
	if r.Method != http.MethodGet {
		writeNotFound(w, op)
		return
	}
	raw := strings.TrimPrefix(r.URL.EscapedPath(), "/roles/")
	name, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	profile, known, err := h.deps.Lookup(r.Context(), name)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, roleResponse{Profile: profile, Known: known})
}
