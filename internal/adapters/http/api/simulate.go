package api

import (
	"encoding/csv"
	"io"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/pathwise/internal/app"
	"github.com/okian/pathwise/internal/domain/simulation"
	"github.com/okian/pathwise/internal/domain/summary"
)

// Export formats for POST /simulate.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatText = "text"
)

// SimulateHandler handles salary simulations.
type SimulateHandler struct {
	deps SimulateDependencies
}

// NewSimulateHandler creates a new simulate handler.
func NewSimulateHandler(deps SimulateDependencies) *SimulateHandler {
	return &SimulateHandler{deps: deps}
}

// HandleSimulate handles POST /simulate[?format=json|csv|text] requests.
func (h *SimulateHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "api.simulate"
	if r.Method != http.MethodPost {
		writeNotFound(w, op)
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format != "" && format != FormatJSON && format != FormatCSV && format != FormatText {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	var req service.SimulationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.Simulate(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	switch format {
	case FormatText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, summary.SimulationText(res))
		return
	case FormatCSV:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="salary-simulation.csv"`)
		w.WriteHeader(http.StatusOK)
		_ = WriteSimulationCSV(w, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// WriteSimulationCSV writes one row per year with both trajectories.
func WriteSimulationCSV(w io.Writer, res simulation.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "with_switching", "no_switch", "difference", "switch_year"}); err != nil {
		return err
	}

	switches := make(map[int]bool, len(res.SwitchYears))
	for _, y := range res.SwitchYears {
		switches[y] = true
	}
	for i := range res.TrajectoryWithSwitching {
		with := res.TrajectoryWithSwitching[i]
		without := res.TrajectoryNoSwitch[i]
		row := []string{
			strconv.Itoa(i),
			formatAmount(with),
			formatAmount(without),
			formatAmount(with - without),
			strconv.FormatBool(switches[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
