package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"spistory/internal/geom"
	"spistory/internal/spi"
)

const (
	ResourceCountries  = "countries"
	ResourceBoundaries = "boundaries"

	maxResourceBytes = 64 << 20
)

// Options configures a Loader.
type Options struct {
	Countries   string // path or http(s) URL of the metrics CSV
	World       string // path or http(s) URL of the TopoJSON/GeoJSON boundaries
	WorldObject string // TopoJSON object name, "countries" when empty
	Timeout     time.Duration
	Logger      *slog.Logger
}

// Loader fetches both resources once.
type Loader struct {
	opts   Options
	client *http.Client
	log    *slog.Logger
}

// NewLoader returns a loader for opts.
func NewLoader(opts Options) *Loader {
	if opts.WorldObject == "" {
		opts.WorldObject = "countries"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		log:    log,
	}
}

// Load fetches the metrics table and the boundaries concurrently. If either
// fails the result is a *LoadError for that resource and no dataset is
// returned.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	var (
		records  []spi.Record
		columns  []string
		features []geom.Feature
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := l.fetch(gctx, l.opts.Countries)
		if err != nil {
			return &LoadError{Resource: ResourceCountries, Source: l.opts.Countries, Err: err}
		}
		records, columns, err = ParseCountries(bytes.NewReader(data), l.log)
		if err != nil {
			return &LoadError{Resource: ResourceCountries, Source: l.opts.Countries, Err: err}
		}
		return nil
	})
	g.Go(func() error {
		data, err := l.fetch(gctx, l.opts.World)
		if err != nil {
			return &LoadError{Resource: ResourceBoundaries, Source: l.opts.World, Err: err}
		}
		features, err = geom.Decode(data, l.opts.WorldObject)
		if err != nil {
			return &LoadError{Resource: ResourceBoundaries, Source: l.opts.World, Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		l.log.Error("dataset load failed", "err", err)
		return nil, err
	}

	d := New(records, features, columns)
	misses := d.Misses()
	l.log.Info("dataset loaded",
		"countries", len(records),
		"boundaries", len(features),
		"unmatched_boundaries", len(misses),
		"elapsed", time.Since(start))
	for _, name := range misses {
		l.log.Debug("boundary without metrics", "name", name)
	}
	return d, nil
}

func (l *Loader) fetch(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("no source configured")
	}
	if !isURL(src) {
		return os.ReadFile(src)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/csv, */*")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	l.log.Debug("fetched resource", "url", src, "bytes", len(data))
	return data, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
