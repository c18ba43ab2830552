// Package app runs one render pass: fetch the feed, compose the map and
// write the page.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/joeblew999/plat-quake/internal/boundary"
	"github.com/joeblew999/plat-quake/internal/config"
	"github.com/joeblew999/plat-quake/internal/feed"
	"github.com/joeblew999/plat-quake/internal/mapview"
	"github.com/joeblew999/plat-quake/internal/quake"
	"github.com/joeblew999/plat-quake/internal/templates"
)

// Stdout as an output path writes the page to standard output.
const Stdout = "-"

// Config holds one render pass's settings.
type Config struct {
	FeedURL     string
	Output      string
	APIKey      string
	TileURL     string
	PlatesFile  string
	OrogensFile string
	StyleFile   string
	TemplateDir string
	Timeout     time.Duration
	FitBounds   bool
}

// Fetcher retrieves the feed once.
type Fetcher interface {
	Fetch(ctx context.Context) (*geojson.FeatureCollection, error)
}

// Result summarises a render pass.
type Result struct {
	Output      string
	Markers     int
	Placeholder bool
}

// Runner wires the render pass collaborators.
type Runner struct {
	cfg     Config
	fetcher Fetcher
	clock   clockwork.Clock
	stdout  io.Writer
	logger  *zap.Logger
}

// New creates a Runner fetching from cfg.FeedURL.
func New(cfg Config, logger *zap.Logger) *Runner {
	if cfg.FeedURL == "" {
		cfg.FeedURL = quake.DefaultFeedURL
	}
	return &Runner{
		cfg:     cfg,
		fetcher: feed.NewClient(cfg.FeedURL, cfg.Timeout, logger),
		clock:   clockwork.NewRealClock(),
		stdout:  os.Stdout,
		logger:  logger,
	}
}

// WithFetcher replaces the feed client.
func (r *Runner) WithFetcher(f Fetcher) *Runner {
	r.fetcher = f
	return r
}

// WithClock replaces the clock used for the generated-at stamp.
func (r *Runner) WithClock(c clockwork.Clock) *Runner {
	r.clock = c
	return r
}

// WithStdout replaces the writer used for Stdout output.
func (r *Runner) WithStdout(w io.Writer) *Runner {
	r.stdout = w
	return r
}

// Run performs the single fetch and renders the page. A feed failure is
// logged and produces a placeholder page rather than an error; it is never
// retried. Configuration and output errors are returned.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	in, err := r.input()
	if err != nil {
		return Result{}, err
	}

	renderer, err := r.renderer()
	if err != nil {
		return Result{}, fmt.Errorf("load templates: %w", err)
	}

	m, err := r.compose(ctx, in)
	if err != nil {
		return Result{}, err
	}

	page, err := renderer.Render("page", PageData{
		Title:       "Earthquakes",
		Map:         m,
		FeedURL:     r.cfg.FeedURL,
		GeneratedAt: r.clock.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return Result{}, fmt.Errorf("render page: %w", err)
	}

	if err := r.write(page); err != nil {
		return Result{}, err
	}

	res := Result{Output: r.cfg.Output, Placeholder: m.Notice != ""}
	if res.Output == "" {
		res.Output = Stdout
	}
	if markers, ok := m.Markers(); ok {
		res.Markers = markers.Len()
	}
	r.logger.Info("map rendered",
		zap.String("output", res.Output),
		zap.Int("markers", res.Markers),
		zap.Bool("placeholder", res.Placeholder),
	)
	return res, nil
}

// compose is the Idle → Rendered transition.
func (r *Runner) compose(ctx context.Context, in mapview.Input) (*mapview.Map, error) {
	fc, err := r.fetcher.Fetch(ctx)
	if err != nil {
		r.logger.Error("earthquake feed unavailable", zap.String("url", r.cfg.FeedURL), zap.Error(err))
		return mapview.Placeholder(in, "Earthquake feed unavailable; showing boundaries only.")
	}

	records, err := quake.RecordsFromFeed(fc)
	if err != nil {
		r.logger.Error("earthquake feed rejected", zap.String("url", r.cfg.FeedURL), zap.Error(err))
		return mapview.Placeholder(in, "Earthquake feed could not be read; showing boundaries only.")
	}

	in.Records = records
	return mapview.Compose(in)
}

func (r *Runner) input() (mapview.Input, error) {
	view := mapview.DefaultView
	view.FitBounds = r.cfg.FitBounds
	in := mapview.Input{
		Style:    mapview.DefaultStyle(),
		Basemaps: mapview.DefaultBasemaps(),
		View:     &view,
	}
	if r.cfg.APIKey != "" {
		in.Basemaps.APIKey = r.cfg.APIKey
	}
	if r.cfg.TileURL != "" {
		in.Basemaps.URL = r.cfg.TileURL
	}

	if r.cfg.StyleFile != "" {
		sf, err := config.LoadStyle(r.cfg.StyleFile)
		if err != nil {
			return mapview.Input{}, err
		}
		sf.Apply(&in.Style, &in.Basemaps, in.View)
	}

	var err error
	if in.Plates, err = boundary.LoadOrEmpty(r.cfg.PlatesFile); err != nil {
		return mapview.Input{}, fmt.Errorf("plates: %w", err)
	}
	if in.Orogens, err = boundary.LoadOrEmpty(r.cfg.OrogensFile); err != nil {
		return mapview.Input{}, fmt.Errorf("orogens: %w", err)
	}
	if r.cfg.PlatesFile == "" || r.cfg.OrogensFile == "" {
		r.logger.Warn("boundary dataset not configured; overlay will be empty",
			zap.String("plates", r.cfg.PlatesFile),
			zap.String("orogens", r.cfg.OrogensFile),
		)
	}
	return in, nil
}

func (r *Runner) renderer() (*templates.Renderer, error) {
	if r.cfg.TemplateDir != "" {
		return templates.NewFromDir(r.cfg.TemplateDir)
	}
	return templates.New()
}

func (r *Runner) write(page string) error {
	if r.cfg.Output == "" || r.cfg.Output == Stdout {
		_, err := io.WriteString(r.stdout, page)
		return err
	}

	if dir := filepath.Dir(r.cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(r.cfg.Output, []byte(page), 0644); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// PageData is the page template's input.
type PageData struct {
	Title       string
	Map         *mapview.Map
	FeedURL     string
	GeneratedAt string
}
