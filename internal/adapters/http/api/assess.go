package api

import (
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/pathwise/internal/app"
	"github.com/okian/pathwise/internal/domain/model"
)

// AssessHandler handles transition assessments.
type AssessHandler struct {
	deps AssessDependencies
}

// NewAssessHandler creates a new assess handler.
func NewAssessHandler(deps AssessDependencies) *AssessHandler {
	return &AssessHandler{deps: deps}
}

type assessRequest struct {
	CurrentRole         string  `json:"current_role"`
	TargetRole          string  `json:"target_role"`
	CurrentCompensation float64 `json:"current_compensation"`
}

func (a assessRequest) validate() error {
	switch {
	case strings.TrimSpace(a.TargetRole) == "":
		return errors.New("missing target_role")
	case a.CurrentCompensation < 0:
		return errors.New("current_compensation must not be negative")
	}
	return nil
}

// incompleteAssessment is the 400 body when the projection lacks figures
// but scenario guidance could still be built.
type incompleteAssessment struct {
	errorResponse
	service.Assessment
}

// HandleAssess handles POST /assess requests.
func (h *AssessHandler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	const op = "api.assess"
	if r.Method != http.MethodPost {
		writeNotFound(w, op)
		return
	}
	var req assessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.Assess(r.Context(), model.ProjectionInput{
		CurrentRole:         req.CurrentRole,
		TargetRole:          req.TargetRole,
		CurrentCompensation: req.CurrentCompensation,
	})
	if err != nil {
		if errors.Is(err, model.ErrIncompleteInput) && res.Guidance != nil {
			writeJSON(w, http.StatusBadRequest, incompleteAssessment{
				errorResponse: errorResponse{Code: "incomplete_input", Message: WrapKind(op, ErrBadRequest, err).Error()},
				Assessment:    res,
			})
			return
		}
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
