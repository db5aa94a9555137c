package summarize

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wetstraat/kamerdata/internal/cache"
	"github.com/wetstraat/kamerdata/internal/lookup"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name      string
	available bool
	err       error

	mu    sync.Mutex
	calls []Request
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Summarize(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return &Response{
		Summary:    "samenvatting van: " + req.Input,
		Model:      "test-model",
		TokensUsed: 42,
	}, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func (m *MockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func summarizeConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.LLM.RequestsPerSecond = 1000
	cfg.Cache.TTL = time.Hour
	return cfg
}

func summarizeSource(tables map[string][]rowsource.Row) *rowsource.MemorySource {
	return rowsource.NewMemorySource(tables)
}

func TestSummarizer_GeneratesMissingSummaries(t *testing.T) {
	source := summarizeSource(map[string][]rowsource.Row{
		rowsource.TableQuestions: {
			{"q1", "55", "1", "Jan Peeters", "", "Klimaat;Energie", "", "[]", ""},
			{"q2", "55", "1", "An Smet", "", "Pensioenen", "", "[]", ""},
		},
		rowsource.TableDossiers: {
			{"55", "D1", "Wetsontwerp tot wijziging van de pensioenwet", "", "", "", "", "", ""},
		},
		rowsource.TableSummaries: {},
	})
	provider := &MockProvider{name: "test", available: true}
	s := NewSummarizer(summarizeConfig(), source, source, provider, nil)

	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// q2 has a single topic and needs no summary.
	if stats.Pending != 2 || stats.Generated != 2 || stats.Failed != 0 {
		t.Errorf("stats = %+v", stats)
	}

	rows, err := source.ReadTable(context.Background(), rowsource.TableSummaries)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("summary rows = %d", len(rows))
	}

	byTask := make(map[string]rowsource.Row)
	for _, row := range rows {
		byTask[row.Get(rowsource.SummaryTask)] = row
	}

	topics := byTask[string(TaskQuestionTopics)]
	if topics.Get(rowsource.SummaryInputHash) != lookup.ContentHash("Klimaat;Energie") {
		t.Errorf("topics hash = %q", topics.Get(rowsource.SummaryInputHash))
	}
	if !strings.Contains(topics.Get(rowsource.SummaryText), "Klimaat;Energie") {
		t.Errorf("topics summary = %q", topics.Get(rowsource.SummaryText))
	}

	// Dossier titles are hashed with a trailing period.
	title := byTask[string(TaskDossierTitle)]
	want := lookup.ContentHash("Wetsontwerp tot wijziging van de pensioenwet.")
	if title.Get(rowsource.SummaryInputHash) != want {
		t.Errorf("title hash = %q, want %q", title.Get(rowsource.SummaryInputHash), want)
	}
}

func TestSummarizer_SkipsExistingHashes(t *testing.T) {
	source := summarizeSource(map[string][]rowsource.Row{
		rowsource.TableQuestions: {
			{"q1", "55", "1", "Jan Peeters", "", "Klimaat;Energie", "", "[]", ""},
		},
		rowsource.TableSummaries: {
			{lookup.ContentHash("Klimaat;Energie"), string(TaskQuestionTopics), "Klimaatbeleid"},
		},
	})
	provider := &MockProvider{name: "test", available: true}
	s := NewSummarizer(summarizeConfig(), source, source, provider, nil)

	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Pending != 0 {
		t.Errorf("pending = %d, want 0", stats.Pending)
	}
	if provider.callCount() != 0 {
		t.Errorf("provider called %d times", provider.callCount())
	}
}

func TestSummarizer_DeduplicatesInputs(t *testing.T) {
	// The same topic header appears in both question tables.
	source := summarizeSource(map[string][]rowsource.Row{
		rowsource.TableQuestions: {
			{"q1", "55", "1", "Jan Peeters", "", "Klimaat;Energie", "", "[]", ""},
		},
		rowsource.TableCommissionQuestions: {
			{"cq1", "55", "2", "An Smet", "", "Klimaat;Energie", "", "[]", ""},
		},
	})
	provider := &MockProvider{name: "test", available: true}
	s := NewSummarizer(summarizeConfig(), source, source, provider, nil)

	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Pending != 1 || provider.callCount() != 1 {
		t.Errorf("pending = %d, calls = %d, want 1 and 1", stats.Pending, provider.callCount())
	}
}

func TestSummarizer_CacheAvoidsProviderCalls(t *testing.T) {
	store := cache.NewMemoryCache(time.Hour, time.Hour)
	if err := store.Set(cache.CacheKey("Klimaat;Energie"), []byte("Klimaatbeleid"), time.Hour); err != nil {
		t.Fatal(err)
	}

	source := summarizeSource(map[string][]rowsource.Row{
		rowsource.TableQuestions: {
			{"q1", "55", "1", "Jan Peeters", "", "Klimaat;Energie", "", "[]", ""},
		},
	})
	provider := &MockProvider{name: "test", available: true}
	s := NewSummarizer(summarizeConfig(), source, source, provider, store)

	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Cached != 1 || stats.Generated != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if provider.callCount() != 0 {
		t.Errorf("provider called %d times", provider.callCount())
	}

	rows, err := source.ReadTable(context.Background(), rowsource.TableSummaries)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Get(rowsource.SummaryText) != "Klimaatbeleid" {
		t.Errorf("rows = %v", rows)
	}
}

func TestSummarizer_ProviderUnavailable(t *testing.T) {
	source := summarizeSource(map[string][]rowsource.Row{
		rowsource.TableQuestions: {
			{"q1", "55", "1", "Jan Peeters", "", "Klimaat;Energie", "", "[]", ""},
		},
	})
	provider := &MockProvider{name: "test", available: false}
	s := NewSummarizer(summarizeConfig(), source, source, provider, nil)

	if _, err := s.Run(context.Background()); err == nil {
		t.Fatal("expected error for unavailable provider")
	}
}

func TestSummarizer_ProviderErrorCountsAsFailed(t *testing.T) {
	source := summarizeSource(map[string][]rowsource.Row{
		rowsource.TableQuestions: {
			{"q1", "55", "1", "Jan Peeters", "", "Klimaat;Energie", "", "[]", ""},
		},
		rowsource.TableSummaries: {},
	})
	provider := &MockProvider{name: "test", available: true, err: errors.New("rate limit exceeded")}
	s := NewSummarizer(summarizeConfig(), source, source, provider, nil)

	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Failed != 1 || stats.Generated != 0 {
		t.Errorf("stats = %+v", stats)
	}

	rows, err := source.ReadTable(context.Background(), rowsource.TableSummaries)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("no rows should be written, got %v", rows)
	}
}

func TestSummarizer_NothingToDo(t *testing.T) {
	source := summarizeSource(map[string][]rowsource.Row{})
	provider := &MockProvider{name: "test", available: true}
	s := NewSummarizer(summarizeConfig(), source, source, provider, nil)

	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Pending != 0 {
		t.Errorf("stats = %+v", stats)
	}
}
