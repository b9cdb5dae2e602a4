package api

import (
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/pathwise/internal/app"
)

// ROIHandler handles ROI evaluations and share summaries.
type ROIHandler struct {
	deps ROIDependencies
}

// NewROIHandler creates a new ROI handler.
func NewROIHandler(deps ROIDependencies) *ROIHandler {
	return &ROIHandler{deps: deps}
}

func validateROIRequest(req service.ROIRequest) error {
	if strings.TrimSpace(req.TargetRole) == "" {
		return errors.New("missing target_role")
	}
	return nil
}

func (h *ROIHandler) decode(w http.ResponseWriter, r *http.Request, op string) (service.ROIRequest, bool) {
	var req service.ROIRequest
	if r.Method != http.MethodPost {
		writeNotFound(w, op)
		return req, false
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return req, false
	}
	if err := validateROIRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return req, false
	}
	return req, true
}

// HandleROI handles POST /roi requests.
func (h *ROIHandler) HandleROI(w http.ResponseWriter, r *http.Request) {
	const op = "api.roi"
	req, ok := h.decode(w, r, op)
	if !ok {
		return
	}
	res, err := h.deps.EvaluateROI(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleSummary handles POST /summary requests. Clients asking for
// text/plain get the share text only.
func (h *ROIHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.summary"
	req, ok := h.decode(w, r, op)
	if !ok {
		return
	}
	res, err := h.deps.Summary(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if strings.Contains(r.Header.Get("Accept"), "text/plain") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(res.Text))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
