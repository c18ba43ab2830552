package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/joeblew999/plat-quake/internal/app"
	"github.com/joeblew999/plat-quake/internal/config"
	"github.com/joeblew999/plat-quake/internal/mapview"
	"github.com/joeblew999/plat-quake/internal/quake"
)

// Options defines all CLI flags and env vars for the map generator.
// Flags: --feed-url, --output, --api-key, --plates, --orogens, --style, ...
// Env vars: SERVICE_FEED_URL, SERVICE_OUTPUT, SERVICE_API_KEY, ...
type Options struct {
	FeedURL     string `doc:"Earthquake GeoJSON feed URL" default:"https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson"`
	Output      string `doc:"Output HTML path, - for stdout" short:"o" default:"index.html"`
	APIKey      string `doc:"Tile provider access key" default:"API_KEY"`
	TileURL     string `doc:"Tile URL template with {id} and {accessToken}" default:""`
	Plates      string `doc:"Tectonic plate boundaries GeoJSON file" default:""`
	Orogens     string `doc:"Orogen boundaries GeoJSON file" default:""`
	Style       string `doc:"YAML style file overriding colours, scales and basemaps" default:""`
	TemplateDir string `doc:"Directory of page templates overriding the built-in ones" default:""`
	Timeout     int    `doc:"Feed request timeout in seconds" default:"30"`
	FitBounds   bool   `doc:"Fit the initial view to the earthquakes" default:"false"`
	LogLevel    string `doc:"Log level: debug, info, warn, error" default:"info"`
	LogFormat   string `doc:"Log format: json or console" default:"console"`
}

func newLogger(opts *Options) *zap.Logger {
	logger, err := config.NewLogger(opts.LogLevel, opts.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initialising logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func loadStyle(opts *Options) mapview.Style {
	style := mapview.DefaultStyle()
	if opts.Style == "" {
		return style
	}
	sf, err := config.LoadStyle(opts.Style)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading style: %v\n", err)
		os.Exit(1)
	}
	basemaps := mapview.DefaultBasemaps()
	view := mapview.DefaultView
	sf.Apply(&style, &basemaps, &view)
	return style
}

// output marshals v as indented JSON, or YAML when asYAML is set.
func output(v any, asYAML bool) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil || !asYAML {
		return data, err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		hooks.OnStart(func() {
			logger := newLogger(opts)
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := app.New(app.Config{
				FeedURL:     opts.FeedURL,
				Output:      opts.Output,
				APIKey:      opts.APIKey,
				TileURL:     opts.TileURL,
				PlatesFile:  opts.Plates,
				OrogensFile: opts.Orogens,
				StyleFile:   opts.Style,
				TemplateDir: opts.TemplateDir,
				Timeout:     time.Duration(opts.Timeout) * time.Second,
				FitBounds:   opts.FitBounds,
			}, logger)

			if _, err := runner.Run(ctx); err != nil {
				logger.Error("render failed", zap.Error(err))
				_ = logger.Sync()
				os.Exit(1)
			}
		})
	})

	cli.Root().Use = "quakemap"
	cli.Root().Short = "Render the live earthquake feed as an interactive map page"
	cli.Root().Version = "0.1.0"

	// legend subcommand: print the colour key
	legendCmd := &cobra.Command{
		Use:   "legend",
		Short: "Print the magnitude legend (JSON by default, --yaml for YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			legend := mapview.BuildLegend(loadStyle(opts).Colors)
			useYAML, _ := cmd.Flags().GetBool("yaml")

			out, err := output(legend, useYAML)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling legend: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(out))
		}),
	}
	legendCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	cli.Root().AddCommand(legendCmd)

	// schema subcommand: export the style file JSON Schema
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Export the style file JSON Schema (JSON by default, --yaml for YAML)",
		Run: func(cmd *cobra.Command, args []string) {
			registry := huma.NewMapRegistry("#/components/schemas/", huma.DefaultSchemaNamer)
			registry.Schema(reflect.TypeOf(config.StyleFile{}), true, "")
			useYAML, _ := cmd.Flags().GetBool("yaml")

			out, err := output(registry.Map(), useYAML)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling schema: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(out))
		},
	}
	schemaCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	cli.Root().AddCommand(schemaCmd)

	// defaults subcommand: print the feed URL and the built-in tables
	cli.Root().AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in feed URL and breakpoint tables",
		Run: func(cmd *cobra.Command, args []string) {
			out, err := output(map[string]any{
				"feedUrl": quake.DefaultFeedURL,
				"colors":  quake.ColorBreakpoints,
				"scales":  quake.ScaleBreakpoints,
			}, true)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling defaults: %v\n", err)
				os.Exit(1)
			}
			fmt.Print(string(out))
		},
	})

	cli.Run()
}
