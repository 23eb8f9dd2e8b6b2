package report

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"scenario_projection/pkg/api/response"
	"scenario_projection/pkg/core/period"
	"scenario_projection/pkg/core/pipeline"
	"scenario_projection/pkg/core/projection"
	"scenario_projection/pkg/core/render"
	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/store"
	"scenario_projection/pkg/core/validate"
)

var tracer = otel.Tracer("handler")

// PeriodsResponse lists the period labels of a scenario.
type PeriodsResponse struct {
	Initial            string   `json:"initial"`
	Periods            []string `json:"periods"`
	PeriodsWithInitial []string `json:"periodsWithInitial"`
}

// ValidationResponse is returned by the validate endpoint.
type ValidationResponse struct {
	Valid  bool             `json:"valid"`
	Issues []validate.Issue `json:"issues"`
}

// SnapshotListResponse lists archived snapshots of one scenario.
type SnapshotListResponse struct {
	ScenarioID string                  `json:"scenarioId"`
	Snapshots  []store.SnapshotSummary `json:"snapshots"`
}

// Handler holds dependencies for report endpoints
type Handler struct {
	Pipeline     *pipeline.ReportPipeline
	Logger       *zap.Logger
	MaxBodyBytes int64
}

// NewHandler creates a new report handler
func NewHandler(p *pipeline.ReportPipeline, logger *zap.Logger, maxBodyBytes int64) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Pipeline: p, Logger: logger, MaxBodyBytes: maxBodyBytes}
}

// HandleReports computes every report, or only ?kind=.
// POST /v1/reports
func (h *Handler) HandleReports(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "HandleReports")
	defer span.End()

	var kinds []projection.ReportKind
	if k := r.URL.Query().Get("kind"); k != "" {
		kind, err := projection.ParseReportKind(k)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		kinds = append(kinds, kind)
	}

	s, ok := h.readScenario(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("scenario.id", s.ID))

	res, err := h.Pipeline.Run(ctx, s, kinds...)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}

// HandleRender computes all reports and renders them as Markdown or HTML.
// POST /v1/reports/render?format=markdown|html
func (h *Handler) HandleRender(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "HandleRender")
	defer span.End()

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "markdown"
	}
	if format != "markdown" && format != "html" {
		response.Error(w, http.StatusBadRequest, "format must be markdown or html")
		return
	}

	s, ok := h.readScenario(w, r)
	if !ok {
		return
	}
	res, err := h.Pipeline.Run(ctx, s)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}

	opts := render.Options{Title: s.Title, Currency: s.Parameters.Currency}
	if format == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(render.Markdown(res.Reports, opts)))
		return
	}

	html, err := render.HTML(res.Reports, opts)
	if err != nil {
		h.Logger.Error("render html failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// HandlePeriods returns the period labels of a scenario.
// POST /v1/periods
func (h *Handler) HandlePeriods(w http.ResponseWriter, r *http.Request) {
	s, ok := h.readScenario(w, r)
	if !ok {
		return
	}
	periods, err := period.GetPeriods(s.Parameters)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	withInitial, err := period.GetPeriodsWithInitial(s.Parameters)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	initial, err := period.Initial(s.Parameters)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, PeriodsResponse{Initial: initial, Periods: periods, PeriodsWithInitial: withInitial})
}

// HandleValidate lints a scenario without computing it.
// POST /v1/validate
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.readScenario(w, r)
	if !ok {
		return
	}
	issues := validate.Scenario(s)
	if issues == nil {
		issues = []validate.Issue{}
	}
	response.JSON(w, http.StatusOK, ValidationResponse{Valid: !validate.HasErrors(issues), Issues: issues})
}

// HandleCreateSnapshot computes all reports and archives them.
// POST /v1/snapshots
func (h *Handler) HandleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "HandleCreateSnapshot")
	defer span.End()

	s, ok := h.readScenario(w, r)
	if !ok {
		return
	}
	res, err := h.Pipeline.Archive(ctx, s)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, res)
}

// HandleGetSnapshot returns one archived snapshot.
// GET /v1/snapshots/{id}
func (h *Handler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid snapshot id")
		return
	}
	snap, err := h.Pipeline.Snapshot(r.Context(), id)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snap)
}

// HandleListSnapshots lists the snapshots of ?scenario_id=, newest first.
// GET /v1/snapshots
func (h *Handler) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	scenarioID := r.URL.Query().Get("scenario_id")
	if scenarioID == "" {
		response.Error(w, http.StatusBadRequest, "scenario_id is required")
		return
	}
	list, err := h.Pipeline.Snapshots(r.Context(), scenarioID)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}
	if list == nil {
		list = []store.SnapshotSummary{}
	}
	response.JSON(w, http.StatusOK, SnapshotListResponse{ScenarioID: scenarioID, Snapshots: list})
}

// readScenario decodes the body. The input encoding comes from the Content-Type
// header; anything unrecognised is auto-detected.
func (h *Handler) readScenario(w http.ResponseWriter, r *http.Request) (scenario.Scenario, bool) {
	body, err := response.ReadBody(w, r, h.MaxBodyBytes)
	if err != nil {
		if response.IsTooLarge(err) {
			response.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return scenario.Scenario{}, false
		}
		response.Error(w, http.StatusBadRequest, "cannot read request body")
		return scenario.Scenario{}, false
	}

	s, err := h.Pipeline.Decode(r.Context(), body, formatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return scenario.Scenario{}, false
	}
	return s, true
}

func formatFromContentType(ct string) scenario.Format {
	ct = strings.ToLower(ct)
	switch {
	case strings.Contains(ct, "hjson"):
		return scenario.FormatHJSON
	case strings.Contains(ct, "yaml"):
		return scenario.FormatYAML
	case strings.Contains(ct, "json"):
		return scenario.FormatJSON
	}
	return scenario.FormatAuto
}

func (h *Handler) writePipelineError(w http.ResponseWriter, err error) {
	var verr *pipeline.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(w, http.StatusBadRequest, err.Error(), verr.Issues)
	case errors.Is(err, scenario.ErrDecode):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrSnapshotNotFound):
		response.Error(w, http.StatusNotFound, "snapshot not found")
	case errors.Is(err, pipeline.ErrNoRepository):
		response.Error(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.Logger.Error("pipeline failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal error")
	}
}
