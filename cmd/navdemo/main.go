// Command navdemo runs the navigation scenarios as scripted walkthroughs and
// prints every state they pass through.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	"github.com/BrandonKowalski/navstack/pkg/navstack/scenarios"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "navdemo:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("navdemo", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a TOML config file (default "+constants.DefaultConfigFile+" if present)")
	lang := fs.String("lang", "", "language for screen titles")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	debug := fs.Bool("debug", false, "log every navigation transition")
	only := fs.String("scenario", "", "comma-separated scenarios to run")
	list := fs.Bool("list", false, "list scenarios and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		for _, name := range scenarios.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	path, required := *configPath, true
	if path == "" {
		path, required = constants.DefaultConfigFile, false
	}
	cfg, err := loadConfig(path, required)
	if err != nil {
		return err
	}

	if *lang != "" {
		cfg.Language = *lang
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *debug {
		cfg.Debug = true
	}
	if *only != "" {
		cfg.Scenarios = strings.Split(*only, ",")
		if err := cfg.validate(); err != nil {
			return err
		}
	}

	navstack.Init(navstack.Options{
		LogPath:  cfg.LogPath,
		LogLevel: cfg.LogLevel,
		Language: cfg.Language,
		Debug:    cfg.Debug,
	})
	defer navstack.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runScenarios(ctx, cfg, out)
}

func runScenarios(ctx context.Context, cfg Config, out io.Writer) error {
	logger := navstack.GetLogger()
	r := newRenderer(cfg.Style)

	for _, name := range cfg.selected() {
		s, err := scenarios.New(name)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, r.title(name))
		i := 0
		err = s.Walkthrough(ctx, func(f scenarios.Frame) {
			fmt.Fprintln(out, r.frame(i, f))
			i++
		})
		if err != nil {
			return fmt.Errorf("scenario %s: %w", name, err)
		}
		logger.Info("scenario finished", "scenario", name, "frames", i)
		fmt.Fprintln(out)
	}
	return nil
}
