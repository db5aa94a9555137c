// Package pipeline orchestrates a full generation run: concurrent table
// reads, lookup construction, entity joining, derived metrics and JSON
// rendering.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/wetstraat/kamerdata/internal/colors"
	"github.com/wetstraat/kamerdata/internal/join"
	"github.com/wetstraat/kamerdata/internal/lookup"
	"github.com/wetstraat/kamerdata/internal/metrics"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
	"github.com/wetstraat/kamerdata/internal/topics"
	"github.com/wetstraat/kamerdata/internal/worker"
)

// Pipeline runs the dataset-to-view-model generation.
type Pipeline struct {
	source   rowsource.Source
	config   *model.Config
	taxonomy topics.Taxonomy
	palette  colors.Palette
	renderer *Renderer
}

// NewPipeline creates a pipeline over the given row source. Missing topic
// or color config degrades that feature with a warning instead of failing
// the run.
func NewPipeline(cfg *model.Config, source rowsource.Source) *Pipeline {
	taxonomy, err := topics.Load(cfg.Data.TopicsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: topics unavailable: %v\n", err)
		taxonomy = nil
	}

	palette, err := colors.Load(cfg.Data.PartyColorsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: party colors unavailable: %v\n", err)
		palette = nil
	}

	return &Pipeline{
		source:   source,
		config:   cfg,
		taxonomy: taxonomy,
		palette:  palette,
		renderer: NewRenderer(cfg.Data.OutputDir),
	}
}

// Result holds every generated view-model of one run.
type Result struct {
	Members      *model.MembersData
	Meetings     *model.MeetingsData
	Dossiers     *model.DossiersData
	Questions    *model.QuestionsData
	Propositions *model.PropositionsData
	Parties      *model.PartiesData
	Lobby        *model.LobbyData
}

// allTables is every table a full run reads.
var allTables = []string{
	rowsource.TableMembers,
	rowsource.TableMeetings,
	rowsource.TableCommissions,
	rowsource.TableVotes,
	rowsource.TableQuestions,
	rowsource.TableCommissionQuestions,
	rowsource.TablePropositions,
	rowsource.TableDossiers,
	rowsource.TableSubdocuments,
	rowsource.TableRemunerations,
	rowsource.TableSummaries,
	rowsource.TableLobby,
}

// AllTables returns the table names a full run reads, in dataset order.
// The sync command downloads exactly this set.
func AllTables() []string {
	return append([]string(nil), allTables...)
}

// tableJob reads one table inside the worker pool.
type tableJob struct {
	source rowsource.Source
	name   string
}

// tableResult is the outcome of one table read.
type tableResult struct {
	name string
	rows []rowsource.Row
	err  error
}

func (r *tableResult) GetError() error { return r.err }

func (j *tableJob) Execute(ctx context.Context) worker.Result {
	rows, err := j.source.ReadTable(ctx, j.name)
	return &tableResult{name: j.name, rows: rows, err: err}
}

// tableSet is the outcome of the read phase: rows per table, plus which
// reads failed hard. A missing table reads as empty and is not a failure.
type tableSet struct {
	rows   map[string][]rowsource.Row
	failed map[string]error
}

func (t *tableSet) get(name string) []rowsource.Row { return t.rows[name] }

// ok reports whether every named table read cleanly (missing counts as
// clean). Producers use it to decide between building and falling back.
func (t *tableSet) ok(names ...string) error {
	for _, name := range names {
		if err := t.failed[name]; err != nil {
			return fmt.Errorf("table %s: %w", name, err)
		}
	}
	return nil
}

// readTables fetches all tables concurrently. Table reads are independent
// I/O; joining stays single-threaded afterwards.
func (p *Pipeline) readTables(ctx context.Context) *tableSet {
	pool := worker.NewPool(p.config.Concurrency.TableReaders)
	pool.Start()
	for _, name := range allTables {
		pool.Submit(&tableJob{source: p.source, name: name})
	}

	set := &tableSet{
		rows:   make(map[string][]rowsource.Row, len(allTables)),
		failed: make(map[string]error),
	}
	for _, result := range pool.Wait() {
		tr := result.(*tableResult)
		switch {
		case tr.err == nil:
			set.rows[tr.name] = tr.rows
		case errors.Is(tr.err, rowsource.ErrTableMissing):
			set.rows[tr.name] = nil
		default:
			fmt.Fprintf(os.Stderr, "Warning: reading %s: %v\n", tr.name, tr.err)
			set.failed[tr.name] = tr.err
		}
	}
	return set
}

// Run reads the dataset and builds every view-model. Each producer is
// guarded independently: a failure yields that producer's empty fallback
// and a stderr log, never an aborted run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	tables := p.readTables(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	memberRows := tables.get(rowsource.TableMembers)
	meetingRows := tables.get(rowsource.TableMeetings)
	commissionRows := tables.get(rowsource.TableCommissions)
	voteRows := tables.get(rowsource.TableVotes)
	questionRows := tables.get(rowsource.TableQuestions)
	commissionQuestionRows := tables.get(rowsource.TableCommissionQuestions)
	propositionRows := tables.get(rowsource.TablePropositions)
	dossierRows := tables.get(rowsource.TableDossiers)

	plenaryDates := lookup.DateByMeeting(meetingRows)
	commissionDates := lookup.DateByMeeting(commissionRows)
	partyByName := lookup.PartyByName(memberRows)
	summaries := lookup.SummaryByHash(tables.get(rowsource.TableSummaries))
	dossiers := lookup.DossierByID(dossierRows)
	active := join.ActiveMembers(memberRows)

	result := &Result{}

	result.Members = guard("members", model.EmptyMembersData, func() (*model.MembersData, error) {
		if err := tables.ok(rowsource.TableMembers, rowsource.TableVotes, rowsource.TableRemunerations); err != nil {
			return nil, err
		}
		joiner := join.NewMemberJoiner(plenaryDates, commissionDates, partyByName, dossiers, p.palette)
		data := joiner.Build(
			memberRows, tables.get(rowsource.TableRemunerations),
			questionRows, commissionQuestionRows,
			propositionRows, tables.get(rowsource.TableSubdocuments), voteRows,
		)
		metrics.ApplyMemberAttendance(data.Members, voteRows)
		metrics.ApplyOutlierScores(data.Members)
		data.Graph = metrics.BuildGraph(data.Members, p.palette, p.config.Chamber.SimilarityThreshold)
		data.TopContributorsByTopic = metrics.TopContributors(data.Members, p.taxonomy)
		return data, nil
	})

	result.Meetings = guard("meetings", model.EmptyMeetingsData, func() (*model.MeetingsData, error) {
		if err := tables.ok(rowsource.TableMeetings, rowsource.TableCommissions, rowsource.TableVotes); err != nil {
			return nil, err
		}
		joiner := join.NewMeetingJoiner(plenaryDates, commissionDates, partyByName, summaries, dossiers, p.taxonomy)
		data := joiner.Build(meetingRows, commissionRows, questionRows, commissionQuestionRows, propositionRows, voteRows)
		metrics.ApplyMeetingAttendance(data.Meetings, active, p.config.Chamber.Size)
		return data, nil
	})

	result.Dossiers = guard("dossiers", model.EmptyDossiersData, func() (*model.DossiersData, error) {
		if err := tables.ok(rowsource.TableDossiers, rowsource.TableSubdocuments, rowsource.TableVotes); err != nil {
			return nil, err
		}
		joiner := join.NewDossierJoiner(partyByName)
		return joiner.Build(dossierRows, tables.get(rowsource.TableSubdocuments), voteRows), nil
	})

	result.Questions = guard("questions", model.EmptyQuestionsData, func() (*model.QuestionsData, error) {
		if err := tables.ok(rowsource.TableQuestions, rowsource.TableCommissionQuestions); err != nil {
			return nil, err
		}
		joiner := join.NewQuestionJoiner(plenaryDates, commissionDates, partyByName, summaries, p.taxonomy)
		return joiner.Build(questionRows, commissionQuestionRows), nil
	})

	result.Propositions = guard("propositions", model.EmptyPropositionsData, func() (*model.PropositionsData, error) {
		if err := tables.ok(rowsource.TablePropositions, rowsource.TableDossiers); err != nil {
			return nil, err
		}
		joiner := join.NewPropositionJoiner(plenaryDates, partyByName, summaries, dossiers)
		return joiner.Build(propositionRows), nil
	})

	result.Parties = guard("parties", model.EmptyPartiesData, func() (*model.PartiesData, error) {
		if err := tables.ok(rowsource.TableMembers, rowsource.TableQuestions); err != nil {
			return nil, err
		}
		joiner := join.NewPartyJoiner(plenaryDates, partyByName, summaries, dossiers)
		return joiner.Build(memberRows, questionRows, propositionRows), nil
	})

	result.Lobby = guard("lobby", model.EmptyLobbyData, func() (*model.LobbyData, error) {
		if err := tables.ok(rowsource.TableLobby); err != nil {
			return nil, err
		}
		return join.BuildLobby(tables.get(rowsource.TableLobby)), nil
	})

	return result, nil
}

// Generate runs the pipeline and writes every view-model file.
func (p *Pipeline) Generate(ctx context.Context) error {
	result, err := p.Run(ctx)
	if err != nil {
		return err
	}
	return p.renderer.WriteAll(result)
}

// guard runs one producer, degrading to its empty fallback on error or
// panic so the other producers still emit.
func guard[T any](name string, fallback func() *T, build func() (*T, error)) (out *T) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Warning: building %s: panic: %v\n", name, r)
			out = fallback()
		}
	}()

	data, err := build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: building %s: %v\n", name, err)
		return fallback()
	}
	return data
}
