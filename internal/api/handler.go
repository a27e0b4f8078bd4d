// Package api serves the solver over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/i18n"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/service"
)

// Handler serves the solve, history and health endpoints.
type Handler struct {
	solver    service.Solver
	history   service.HistoryStore
	cache     *solutionCache
	useStored bool

	// staleBefore holds the UnixNano time before which stored solutions are ignored.
	staleBefore atomic.Int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithHistory records every solve attempt in store and enables the history endpoints.
func WithHistory(store service.HistoryStore) Option {
	return func(h *Handler) {
		h.history = store
	}
}

// WithCache caches solutions per question and locale for ttl.
func WithCache(ttl time.Duration) Option {
	return func(h *Handler) {
		h.cache = newSolutionCache(ttl)
	}
}

// WithStoredSolutions answers repeated questions from the newest successful
// history record before running the solver. Requires WithHistory.
func WithStoredSolutions() Option {
	return func(h *Handler) {
		h.useStored = true
	}
}

// New creates a handler around solver.
func New(solver service.Solver, opts ...Option) *Handler {
	h := &Handler{solver: solver}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Close releases the cache janitor.
func (h *Handler) Close() {
	if h.cache != nil {
		h.cache.Close()
	}
}

// InvalidateSolutions drops cached solutions and stops answering from history
// records created before now. Call it when the classification hints change.
func (h *Handler) InvalidateSolutions() {
	h.staleBefore.Store(time.Now().UnixNano())
	if h.cache != nil {
		h.cache.clear()
	}
	common.LogInfo("Invalidated cached solutions", nil)
}

// Routes returns the complete HTTP handler including logging and panic recovery.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/api/dreisatz/solve", h.Solve)
	mux.HandleFunc("/api/dreisatz/history", h.ListHistory)
	mux.HandleFunc("/api/dreisatz/history/{id}", h.GetHistory)
	mux.HandleFunc("/api/dreisatz/stats", h.Stats)
	return logRequests(recoverPanics(mux))
}

type solveRequest struct {
	Question string `json:"question"`
	Locale   string `json:"locale"`
}

type solveResponse struct {
	Success bool            `json:"success"`
	Data    *model.Solution `json:"data"`
}

type errorResponse struct {
	Success bool        `json:"success"`
	Code    common.Code `json:"code"`
	Message string      `json:"message"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// historyView is a history record with its stored solution embedded as JSON.
type historyView struct {
	model.HistoryRecord
	Solution json.RawMessage `json:"solution,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code common.Code, loc model.Locale) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Code:    code,
		Message: i18n.ErrorMessage(code, loc),
	})
}

// statusFor maps an outcome code onto its HTTP status.
func statusFor(code common.Code) int {
	switch code {
	case common.CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case common.CodeNotFound:
		return http.StatusNotFound
	}
	if code.IsClientError() {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Solve handles POST /api/dreisatz/solve.
func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, common.CodeMethodNotAllowed, model.DefaultLocale)
		return
	}

	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// The locale is unknown when the body cannot be read.
		common.LogError(err, "Failed to decode solve request", nil)
		writeError(w, http.StatusInternalServerError, common.CodeUnknown, model.DefaultLocale)
		return
	}

	loc := model.ParseLocale(req.Locale)
	question := strings.TrimSpace(req.Question)
	key := model.QuestionHash(loc, question)
	start := time.Now()

	if h.cache != nil {
		if solution, ok := h.cache.get(key); ok {
			h.record(r, question, key, loc, solution, nil, time.Since(start))
			writeJSON(w, http.StatusOK, solveResponse{Success: true, Data: solution})
			return
		}
	}

	if solution := h.storedSolution(r, key); solution != nil {
		if h.cache != nil {
			h.cache.set(key, solution)
		}
		h.record(r, question, key, loc, solution, nil, time.Since(start))
		writeJSON(w, http.StatusOK, solveResponse{Success: true, Data: solution})
		return
	}

	solution, err := h.solver.Solve(r.Context(), question, loc)
	elapsed := time.Since(start)

	h.record(r, question, key, loc, solution, err, elapsed)

	if err != nil {
		code := common.CodeOf(err)
		if code == common.CodeUnknown {
			common.LogError(err, "Solve failed", common.Fields{"locale": loc})
		}
		writeError(w, statusFor(code), code, loc)
		return
	}

	if h.cache != nil {
		h.cache.set(key, solution)
	}
	writeJSON(w, http.StatusOK, solveResponse{Success: true, Data: solution})
}

// storedSolution looks up a previously recorded solution for key.
func (h *Handler) storedSolution(r *http.Request, key string) *model.Solution {
	if !h.useStored || h.history == nil {
		return nil
	}

	record, err := h.history.FindSolution(r.Context(), key)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			common.LogError(err, "Failed to look up stored solution", common.Fields{"question_hash": key})
		}
		return nil
	}
	if record.CreatedAt.UnixNano() < h.staleBefore.Load() {
		common.LogDebug("Ignoring stored solution from before hint reload", common.Fields{"id": record.ID})
		return nil
	}

	var solution model.Solution
	if err := json.Unmarshal([]byte(record.Solution), &solution); err != nil {
		common.LogError(err, "Failed to decode stored solution", common.Fields{"id": record.ID})
		return nil
	}
	common.LogDebug("Answered from history", common.Fields{"id": record.ID})
	return &solution
}

// record stores the attempt in the history. Failures are logged and do not
// affect the response.
func (h *Handler) record(r *http.Request, question, key string, loc model.Locale, solution *model.Solution, solveErr error, elapsed time.Duration) {
	if h.history == nil || question == "" {
		return
	}

	record := &model.HistoryRecord{
		QuestionHash:   key,
		Question:       question,
		Locale:         loc,
		DurationMicros: elapsed.Microseconds(),
	}
	if solveErr != nil {
		record.Code = string(common.CodeOf(solveErr))
	} else {
		encoded, err := json.Marshal(solution)
		if err != nil {
			common.LogError(err, "Failed to encode solution for history", nil)
			return
		}
		record.Type = solution.Type
		record.Result = solution.Summary.B2.Value
		record.Solution = string(encoded)
	}

	if err := h.history.RecordSolve(r.Context(), record); err != nil {
		common.LogError(err, "Failed to record solve", common.Fields{"question_hash": key})
	}
}

// ListHistory handles GET /api/dreisatz/history?limit=N.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	if !h.historyRequest(w, r) {
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 0
	}

	records, err := h.history.ListRecent(r.Context(), limit)
	if err != nil {
		common.LogError(err, "Failed to list history", nil)
		writeError(w, http.StatusInternalServerError, common.CodeUnknown, model.DefaultLocale)
		return
	}

	views := make([]historyView, 0, len(records))
	for _, record := range records {
		views = append(views, newHistoryView(record))
	}
	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: views})
}

// GetHistory handles GET /api/dreisatz/history/{id}.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if !h.historyRequest(w, r) {
		return
	}

	record, err := h.history.GetRecord(r.Context(), r.PathValue("id"))
	if errors.Is(err, common.ErrNotFound) {
		writeError(w, http.StatusNotFound, common.CodeNotFound, model.DefaultLocale)
		return
	}
	if err != nil {
		common.LogError(err, "Failed to get history record", nil)
		writeError(w, http.StatusInternalServerError, common.CodeUnknown, model.DefaultLocale)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: newHistoryView(*record)})
}

// Stats handles GET /api/dreisatz/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if !h.historyRequest(w, r) {
		return
	}

	stats, err := h.history.Stats(r.Context())
	if err != nil {
		common.LogError(err, "Failed to compute stats", nil)
		writeError(w, http.StatusInternalServerError, common.CodeUnknown, model.DefaultLocale)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: stats})
}

// historyRequest checks method and store availability for the history endpoints.
func (h *Handler) historyRequest(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, common.CodeMethodNotAllowed, model.DefaultLocale)
		return false
	}
	if h.history == nil {
		writeError(w, http.StatusNotFound, common.CodeNotFound, model.DefaultLocale)
		return false
	}
	return true
}

func newHistoryView(record model.HistoryRecord) historyView {
	view := historyView{HistoryRecord: record}
	if record.Solution != "" {
		view.Solution = json.RawMessage(record.Solution)
	}
	return view
}
