// Package scraper builds the character catalog file from the renderer's
// public character listing. It runs offline and is never on the
// interactive path.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/textbox-bot/textbox/internal/core/catalog"
)

// ErrNoJSON is returned when a listing response has no JSON object in it.
var ErrNoJSON = errors.New("no json in response")

// Options configures a Scraper.
type Options struct {
	BaseURL    string
	UserAgent  string
	BatchSize  int
	BatchDelay time.Duration
	Client     *http.Client
}

// Stats summarizes a scrape.
type Stats struct {
	Universes int
	Failed    int
	Fetched   int
	Kept      int
}

// Scraper fetches character listings per universe.
type Scraper struct {
	opts   Options
	client *http.Client
	log    zerolog.Logger
}

// New creates a Scraper.
func New(opts Options, log zerolog.Logger) *Scraper {
	if opts.BatchSize < 1 {
		opts.BatchSize = 10
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Scraper{opts: opts, client: client, log: log}
}

type listing struct {
	Data json.RawMessage `json:"data"`
}

// FetchUniverse returns the raw character entries of one universe, keyed by
// character id. Entries are returned unfiltered.
func (s *Scraper) FetchUniverse(ctx context.Context, universe string) (map[string]json.RawMessage, error) {
	q := url.Values{}
	q.Set("universe", universe)
	q.Set("universes", universe)
	endpoint := s.opts.BaseURL + "/ajax/undertale/content/characters?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if s.opts.UserAgent != "" {
		req.Header.Set("User-Agent", s.opts.UserAgent)
	}
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", universe, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", universe, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", universe, err)
	}

	return parseListing(body)
}

// parseListing decodes a listing body. The endpoint may emit stray output
// before the JSON document, so everything before the first '{' is dropped.
func parseListing(body []byte) (map[string]json.RawMessage, error) {
	start := bytes.IndexByte(body, '{')
	if start == -1 {
		return nil, ErrNoJSON
	}

	var l listing
	if err := json.Unmarshal(body[start:], &l); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	data := bytes.TrimSpace(l.Data)
	if len(data) == 0 || data[0] != '{' {
		return map[string]json.RawMessage{}, nil
	}

	var chars map[string]json.RawMessage
	if err := json.Unmarshal(data, &chars); err != nil {
		return nil, fmt.Errorf("decode characters: %w", err)
	}
	return chars, nil
}

// Scrape fetches every universe in batches and merges the characters that
// have text box sprites. A failing universe is logged and skipped.
func (s *Scraper) Scrape(ctx context.Context, universes []string) (map[string]json.RawMessage, Stats, error) {
	var (
		mu    sync.Mutex
		all   = make(map[string]json.RawMessage)
		stats = Stats{Universes: len(universes)}
	)

	for i := 0; i < len(universes); i += s.opts.BatchSize {
		batch := universes[i:min(i+s.opts.BatchSize, len(universes))]

		g, gctx := errgroup.WithContext(ctx)
		for _, universe := range batch {
			g.Go(func() error {
				log := s.log.With().Str("universe", universe).Logger()

				chars, err := s.FetchUniverse(gctx, universe)
				if err != nil {
					log.Error().Err(err).Msg("universe failed")
					mu.Lock()
					stats.Failed++
					mu.Unlock()
					return nil
				}

				kept := 0
				mu.Lock()
				for id, raw := range chars {
					if catalog.HasTextboxSprites(raw) {
						all[id] = raw
						kept++
					}
				}
				stats.Fetched += len(chars)
				mu.Unlock()

				log.Info().Int("fetched", len(chars)).Int("kept", kept).Msg("universe done")
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, stats, err
		}

		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		if i+s.opts.BatchSize < len(universes) && s.opts.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, stats, ctx.Err()
			case <-time.After(s.opts.BatchDelay):
			}
		}
	}

	stats.Kept = len(all)
	return all, stats, nil
}

// WriteCatalog writes characters to path as indented JSON. The file is
// replaced atomically so a running bot never reads a partial file.
func WriteCatalog(path string, chars map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(chars, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}
