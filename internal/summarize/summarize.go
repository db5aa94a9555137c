package summarize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/wetstraat/kamerdata/internal/cache"
	"github.com/wetstraat/kamerdata/internal/lookup"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
	"github.com/wetstraat/kamerdata/internal/worker"
)

// defaultEndpoint is the rate limiter key when no custom base URL is set.
const defaultEndpoint = "https://api.openai.com/v1"

// Summarizer finds the dataset texts that have no summary yet, generates
// the missing ones through a Provider and appends them to the summaries
// table. Reruns are cheap: existing hashes are skipped and fresh results
// come out of the cache without an API call.
type Summarizer struct {
	source   rowsource.Source
	writer   rowsource.Writer
	provider Provider
	store    cache.Cache
	limiter  *worker.Limiter
	config   *model.Config
	endpoint string
}

// NewSummarizer creates a summarizer over the given dataset. The cache may
// be nil, which disables result caching.
func NewSummarizer(cfg *model.Config, source rowsource.Source, writer rowsource.Writer, provider Provider, store cache.Cache) *Summarizer {
	endpoint := cfg.LLM.BaseURL
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Summarizer{
		source:   source,
		writer:   writer,
		provider: provider,
		store:    store,
		limiter:  worker.NewLimiter(cfg.LLM.RequestsPerSecond, 1),
		config:   cfg,
		endpoint: endpoint,
	}
}

// Stats counts what one run did.
type Stats struct {
	Pending   int
	Cached    int
	Generated int
	Failed    int
}

// pending is one input that still needs a summary.
type pending struct {
	task  Task
	input string
	hash  string
}

// Run generates and persists every missing summary. A failed input is
// logged and skipped; the run only fails when nothing can proceed at all.
func (s *Summarizer) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	work, err := s.collect(ctx)
	if err != nil {
		return stats, err
	}
	stats.Pending = len(work)
	if len(work) == 0 {
		return stats, nil
	}

	var rows []rowsource.Row
	var jobs []*summaryJob
	for _, p := range work {
		if s.store != nil {
			if data, ok := s.store.Get(cache.CacheKey(p.input)); ok {
				rows = append(rows, rowsource.Row{p.hash, string(p.task), string(data)})
				stats.Cached++
				continue
			}
		}
		jobs = append(jobs, &summaryJob{summarizer: s, pending: p})
	}

	if len(jobs) > 0 {
		if s.provider == nil {
			return stats, fmt.Errorf("no summary provider configured")
		}
		if !s.provider.IsAvailable(ctx) {
			return stats, fmt.Errorf("provider %s is not available", s.provider.Name())
		}

		pool := worker.NewPool(s.config.Concurrency.SummarizeWorkers)
		pool.Start()
		for _, job := range jobs {
			pool.Submit(job)
		}
		for _, result := range pool.Wait() {
			res := result.(*summaryResult)
			if res.err != nil {
				fmt.Fprintf(os.Stderr, "Warning: summarize %s: %v\n", res.task, res.err)
				stats.Failed++
				continue
			}
			rows = append(rows, rowsource.Row{res.hash, string(res.task), res.summary})
			stats.Generated++
			if s.store != nil {
				_ = s.store.Set(cache.CacheKey(res.input), []byte(res.summary), s.config.Cache.TTL)
			}
		}
	}

	if len(rows) == 0 {
		return stats, nil
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	if err := s.writer.WriteSummaries(ctx, rows); err != nil {
		return stats, fmt.Errorf("write summaries: %w", err)
	}
	return stats, nil
}

// collect gathers the distinct inputs whose hash is not in the summaries
// table yet. Question topic headers qualify only when they hold several
// topics; single topics need no condensing.
func (s *Summarizer) collect(ctx context.Context) ([]pending, error) {
	summaryRows, err := s.readOptional(ctx, rowsource.TableSummaries)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(summaryRows))
	for _, row := range summaryRows {
		existing[row.Get(rowsource.SummaryInputHash)] = true
	}

	var work []pending
	seen := make(map[string]bool)
	add := func(task Task, input string) {
		if input == "" {
			return
		}
		hash := lookup.ContentHash(input)
		if existing[hash] || seen[hash] {
			return
		}
		seen[hash] = true
		work = append(work, pending{task: task, input: input, hash: hash})
	}

	for _, table := range []string{rowsource.TableQuestions, rowsource.TableCommissionQuestions} {
		rows, err := s.readOptional(ctx, table)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			raw := row.Get(rowsource.QuestionTopicsNL)
			if hasMultipleTopics(raw) {
				add(TaskQuestionTopics, raw)
			}
		}
	}

	dossierRows, err := s.readOptional(ctx, rowsource.TableDossiers)
	if err != nil {
		return nil, err
	}
	for _, row := range dossierRows {
		title := row.Get(rowsource.DossierTitle)
		if title == "" {
			continue
		}
		// Titles are hashed with a trailing period, the form the joins
		// look summaries up under.
		add(TaskDossierTitle, title+".")
	}

	return work, nil
}

// readOptional reads a table, treating a missing one as empty.
func (s *Summarizer) readOptional(ctx context.Context, table string) ([]rowsource.Row, error) {
	rows, err := s.source.ReadTable(ctx, table)
	if errors.Is(err, rowsource.ErrTableMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return rows, nil
}

func hasMultipleTopics(raw string) bool {
	for _, r := range raw {
		if r == ';' {
			return true
		}
	}
	return false
}

// summaryJob runs one provider call inside the worker pool.
type summaryJob struct {
	summarizer *Summarizer
	pending    pending
}

// summaryResult is the outcome of one provider call.
type summaryResult struct {
	task    Task
	input   string
	hash    string
	summary string
	err     error
}

func (r *summaryResult) GetError() error { return r.err }

func (j *summaryJob) Execute(ctx context.Context) worker.Result {
	s := j.summarizer
	res := &summaryResult{task: j.pending.task, input: j.pending.input, hash: j.pending.hash}

	if err := s.limiter.Wait(ctx, s.endpoint); err != nil {
		res.err = err
		return res
	}

	resp, err := s.provider.Summarize(ctx, Request{Task: j.pending.task, Input: j.pending.input})
	if err != nil {
		res.err = err
		return res
	}
	if resp.Summary == "" {
		res.err = fmt.Errorf("empty summary from %s", s.provider.Name())
		return res
	}
	res.summary = resp.Summary
	return res
}
