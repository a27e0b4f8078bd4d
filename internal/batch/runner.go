package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/i18n"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/service"
)

// DefaultConcurrency is used when no positive concurrency is configured.
const DefaultConcurrency = 4

// Result is the outcome of one batch item.
type Result struct {
	Solution *model.Solution `yaml:"solution,omitempty"`
	Question string          `yaml:"question"`
	Locale   model.Locale    `yaml:"locale"`
	Code     common.Code     `yaml:"code,omitempty"`
	Message  string          `yaml:"message,omitempty"`
	Index    int             `yaml:"index"`
	Duration time.Duration   `yaml:"-"`
}

// Succeeded reports whether the item was solved.
func (r Result) Succeeded() bool {
	return r.Code == ""
}

// Summary counts the outcomes of a run.
type Summary struct {
	ByCode map[common.Code]int
	Total  int
	Solved int
	Failed int
}

// Runner solves batch items with bounded concurrency.
type Runner struct {
	solver        service.Solver
	history       service.HistoryStore
	onResult      func(Result)
	defaultLocale model.Locale
	concurrency   int
	mu            sync.Mutex
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithConcurrency sets how many items are solved at once.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithDefaultLocale sets the locale of items that name none.
func WithDefaultLocale(loc model.Locale) RunnerOption {
	return func(r *Runner) {
		r.defaultLocale = loc
	}
}

// WithHistory records every item in store.
func WithHistory(store service.HistoryStore) RunnerOption {
	return func(r *Runner) {
		r.history = store
	}
}

// OnResult registers a callback invoked once per finished item. Calls are serialized.
func OnResult(fn func(Result)) RunnerOption {
	return func(r *Runner) {
		r.onResult = fn
	}
}

// NewRunner creates a runner around solver.
func NewRunner(solver service.Solver, opts ...RunnerOption) *Runner {
	r := &Runner{
		solver:        solver,
		concurrency:   DefaultConcurrency,
		defaultLocale: model.DefaultLocale,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency <= 0 {
		r.concurrency = DefaultConcurrency
	}
	return r
}

// Run solves all items and returns their results in input order. Solve
// failures are reported per item; only cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, items []Item) ([]Result, error) {
	results := make([]Result, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.solve(ctx, i, item)
			r.report(results[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch aborted: %w", err)
	}
	return results, nil
}

func (r *Runner) solve(ctx context.Context, index int, item Item) Result {
	loc := r.defaultLocale
	if item.Locale != "" {
		loc = model.ParseLocale(string(item.Locale))
	}

	start := time.Now()
	solution, err := r.solver.Solve(ctx, item.Question, loc)
	result := Result{
		Index:    index,
		Question: item.Question,
		Locale:   loc,
		Solution: solution,
		Duration: time.Since(start),
	}
	if err != nil {
		result.Solution = nil
		result.Code = common.CodeOf(err)
		result.Message = i18n.ErrorMessage(result.Code, loc)
		if result.Code == common.CodeUnknown {
			common.LogError(err, "Batch item failed", common.Fields{"index": index})
		}
	}

	r.record(ctx, result)
	return result
}

func (r *Runner) record(ctx context.Context, result Result) {
	if r.history == nil {
		return
	}

	record := &model.HistoryRecord{
		Question:       result.Question,
		Locale:         result.Locale,
		Code:           string(result.Code),
		DurationMicros: result.Duration.Microseconds(),
	}
	if result.Solution != nil {
		encoded, err := json.Marshal(result.Solution)
		if err != nil {
			slog.Warn("Failed to encode solution", "index", result.Index, "error", err)
			return
		}
		record.Type = result.Solution.Type
		record.Result = result.Solution.Summary.B2.Value
		record.Solution = string(encoded)
	}

	if err := r.history.RecordSolve(ctx, record); err != nil {
		slog.Warn("Failed to record batch item", "index", result.Index, "error", err)
	}
}

func (r *Runner) report(result Result) {
	if r.onResult == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onResult(result)
}

// Summarize counts solved and failed items.
func Summarize(results []Result) Summary {
	s := Summary{ByCode: make(map[common.Code]int), Total: len(results)}
	for _, result := range results {
		if result.Succeeded() {
			s.Solved++
			continue
		}
		s.Failed++
		s.ByCode[result.Code]++
	}
	return s
}

// Codes returns the failure codes of s in sorted order.
func (s Summary) Codes() []common.Code {
	codes := make([]common.Code, 0, len(s.ByCode))
	for code := range s.ByCode {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// WriteResults encodes results as a YAML document.
func WriteResults(w io.Writer, results []Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Results []Result `yaml:"results"`
	}{Results: results}); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return enc.Close()
}
