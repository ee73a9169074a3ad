package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/patrol", h.handlePatrol)
	mux.HandleFunc("/api/obstructions", h.handleObstructions)
	mux.HandleFunc("/api/solve", h.handleSolve)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
}

// statusFor maps domain failures to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingStart),
		errors.Is(err, domain.ErrMalformedGrid),
		errors.Is(err, domain.ErrNoExit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidReportID):
		return http.StatusBadRequest
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(v)
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != method {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

type gridReq struct {
	Name string `json:"name,omitempty"`
	Grid string `json:"grid"`
}

// ---- Patrol ----

type patrolResp struct {
	Visited    int                `json:"visited,omitempty"`
	Path       []domain.Position  `json:"path,omitempty"`
	Exit       *domain.GuardState `json:"exit,omitempty"`
	Steps      int                `json:"steps,omitempty"`
	DurationMs int64              `json:"durationMs,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func (h *Handler) handlePatrol(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req gridReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, patrolResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	out, st, err := h.UC.Patrol(r.Context(), req.Grid)
	if err != nil {
		writeJSON(w, statusFor(err), patrolResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, patrolResp{
		Visited:    len(out.Visited),
		Path:       out.Visited,
		Exit:       &out.State,
		Steps:      st.Steps,
		DurationMs: st.Duration.Milliseconds(),
	})
}

// ---- Obstructions ----

type obstructionsResp struct {
	Count      int               `json:"count"`
	Loops      []domain.Position `json:"loops,omitempty"`
	Trials     int               `json:"trials,omitempty"`
	DurationMs int64             `json:"durationMs,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func (h *Handler) handleObstructions(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req gridReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, obstructionsResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	loops, st, err := h.UC.Obstructions(r.Context(), req.Grid)
	if err != nil {
		writeJSON(w, statusFor(err), obstructionsResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, obstructionsResp{
		Count:      len(loops),
		Loops:      loops,
		Trials:     st.Trials,
		DurationMs: st.Duration.Milliseconds(),
	})
}

// ---- Solve ----

type solveResp struct {
	Report *domain.Report `json:"report,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req gridReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, solveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	rep, err := h.UC.Solve(r.Context(), req.Name, req.Grid)
	if err != nil {
		writeJSON(w, statusFor(err), solveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, solveResp{Report: rep})
}

// ---- Validate ----

type validateResp struct {
	OK     bool           `json:"ok"`
	Issues []domain.Issue `json:"issues,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req gridReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, validateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	ok, issues, err := h.UC.Validate(r.Context(), req.Grid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, validateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, validateResp{OK: ok, Issues: issues})
}

// ---- Generate ----

type generateReq struct {
	Width   int     `json:"width,omitempty"`
	Height  int     `json:"height,omitempty"`
	Density float64 `json:"density,omitempty"`
	Seed    int64   `json:"seed,omitempty"`
}

type generateResp struct {
	Grid       string `json:"grid,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
	DurationMs int64  `json:"durationMs,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		writeJSON(w, http.StatusBadRequest, generateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := domain.GenerateOptions{Width: req.Width, Height: req.Height, Density: req.Density}
	if opts.Width == 0 {
		opts.Width = 10
	}
	if opts.Height == 0 {
		opts.Height = 10
	}
	g, st, err := h.UC.Generate(r.Context(), seed, opts)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, generateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, generateResp{
		Grid:       g.String(),
		Seed:       seed,
		DurationMs: st.Duration.Milliseconds(),
	})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var rep domain.Report
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if rep.ID == "" {
		rep.ID = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	if rep.CreatedAt == 0 {
		rep.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(r.Context(), &rep); err != nil {
		writeJSON(w, statusFor(err), saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: rep.ID})
}

type loadReq struct {
	ID string `json:"id"`
}
type loadResp struct {
	Report *domain.Report `json:"report,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req loadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, loadResp{Error: "invalid JSON or missing id"})
		return
	}
	rep, err := h.UC.LoadReport(r.Context(), req.ID)
	if err != nil {
		writeJSON(w, statusFor(err), loadResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Report: rep})
}

type listResp struct {
	Reports []domain.ReportMeta `json:"reports"`
	Error   string              `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	rs, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, listResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, listResp{Reports: rs})
}
