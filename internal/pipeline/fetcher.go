package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/util"
	"github.com/wetstraat/kamerdata/internal/worker"
)

// Syncer downloads published dataset tables into the local data directory.
// Downloads honor the publisher's robots.txt and are rate limited per
// domain; the dataset host is not ours to hammer.
type Syncer struct {
	client    *http.Client
	robots    *util.RobotsChecker
	limiter   *worker.Limiter
	baseURL   string
	userAgent string
	dataDir   string
}

// NewSyncer creates a Syncer from the sync configuration.
func NewSyncer(cfg *model.Config) *Syncer {
	return &Syncer{
		client: &http.Client{
			Timeout: cfg.Sync.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    util.NewRobotsChecker(cfg.Sync.UserAgent, cfg.Sync.Timeout),
		limiter:   worker.NewLimiter(cfg.Sync.RequestsPerSecond, cfg.Sync.Burst),
		baseURL:   cfg.Sync.BaseURL,
		userAgent: cfg.Sync.UserAgent,
		dataDir:   cfg.Data.Dir,
	}
}

// Sync downloads the named tables. A table that fails leaves its previous
// local file untouched; the error reports every failed table at once.
func (s *Syncer) Sync(ctx context.Context, tables []string) error {
	if s.baseURL == "" {
		return fmt.Errorf("sync: no base URL configured")
	}
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	var failed []string
	for _, table := range tables {
		if err := s.fetchTable(ctx, table); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sync %s: %v\n", table, err)
			failed = append(failed, table)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("sync failed for %d of %d tables: %v", len(failed), len(tables), failed)
	}
	return nil
}

func (s *Syncer) fetchTable(ctx context.Context, table string) error {
	url := fmt.Sprintf("%s/%s.parquet", s.baseURL, table)

	allowed, crawlDelay, err := s.robots.CanFetch(ctx, url)
	if err != nil {
		return fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return fmt.Errorf("disallowed by robots.txt")
	}
	if err := s.limiter.WaitWithDelay(ctx, url, crawlDelay); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	path := filepath.Join(s.dataDir, table+".parquet")
	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("download: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}
