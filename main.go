// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cvxtct/cwnote/annotate"
	"github.com/cvxtct/cwnote/config"
	"github.com/cvxtct/cwnote/export"
	"github.com/cvxtct/cwnote/store"
)

type annotateFlags struct {
	Dashboard     string
	Prefix        string
	Suffix        string
	Label         string
	Value         string
	Time          string
	DryRun        bool
	TitleContains string
	Region        string
	Config        string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "annotate":
		if err := runAnnotate(ctx, os.Args[2:]); err != nil {
			log.Error().Msg(err.Error())
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func runAnnotate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	var f annotateFlags
	fs.StringVar(&f.Dashboard, "dashboard", "", "single dashboard name to update")
	fs.StringVar(&f.Prefix, "dashboard-prefix", "", "annotate every dashboard whose name starts with this prefix")
	fs.StringVar(&f.Suffix, "dashboard-suffix", "", "annotate every dashboard whose name ends with this suffix")
	fs.StringVar(&f.Label, "label", "version", `annotation label, e.g. "version", "incident", "deploy"`)
	fs.StringVar(&f.Value, "value", "", `annotation value, e.g. "1.2.3" or "INC-1234"`)
	fs.StringVar(&f.Time, "time", "", "annotation time (RFC3339); defaults to the current UTC time")
	fs.BoolVar(&f.DryRun, "dry-run", false, "show what would change without updating dashboards")
	fs.StringVar(&f.TitleContains, "widget-title-contains", "", "only annotate widgets whose title contains this substring")
	fs.StringVar(&f.Region, "region", "", "AWS region override (falls back to AWS_REGION / profile)")
	fs.StringVar(&f.Config, "config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(f.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	initLogging(cfg.Log)

	if err := validateSelection(f); err != nil {
		return err
	}
	if f.Value == "" {
		return errors.New("--value is required")
	}

	st, err := newStore(ctx, cfg.Backend, f.Region)
	if err != nil {
		return err
	}

	log.Logger = log.With().Str("run_id", uuid.NewString()).Logger()

	annotator := &annotate.Annotator{
		Store: st,
		Sink:  export.Dir{Base: cfg.Export.Dir},
	}
	_, err = annotator.Run(ctx, annotate.Request{
		Selection: annotate.Selection{Dashboard: f.Dashboard, Prefix: f.Prefix, Suffix: f.Suffix},
		Label:     f.Label,
		Value:     f.Value,
		Time:      f.Time,
		DryRun:    f.DryRun,
		Selector:  annotate.WidgetSelector{TitleContains: f.TitleContains},
	})
	return err
}

// validateSelection enforces exactly one of the three selection modes before
// any backend call is made. The orchestrator re-checks this defensively.
func validateSelection(f annotateFlags) error {
	set := 0
	for _, m := range []string{f.Dashboard, f.Prefix, f.Suffix} {
		if m != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return errors.New("either --dashboard, --dashboard-prefix or --dashboard-suffix is required")
	case set > 1:
		return errors.New("specify only one of --dashboard, --dashboard-prefix and --dashboard-suffix")
	}
	return nil
}

func newStore(ctx context.Context, cfg config.BackendConfig, regionOverride string) (store.Store, error) {
	switch cfg.Type {
	case "http":
		return store.NewHTTP(cfg.URL, cfg.Token), nil
	default:
		region := cfg.Region
		if regionOverride != "" {
			region = regionOverride
		}
		return store.NewCloudWatch(ctx, region)
	}
}

func initLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `cwnote - add vertical annotations to dashboards

Usage:
  cwnote annotate [flags]

Flags of annotate:
  --dashboard NAME               single dashboard name to update
  --dashboard-prefix PREFIX      annotate every dashboard whose name starts with PREFIX
  --dashboard-suffix SUFFIX      annotate every dashboard whose name ends with SUFFIX
  --label LABEL                  annotation label (default "version")
  --value VALUE                  annotation value (required)
  --time TIME                    annotation time (RFC3339), defaults to now
  --dry-run                      show what would change without updating
  --widget-title-contains SUBSTR only annotate widgets whose title contains SUBSTR
  --region REGION                AWS region override
  --config PATH                  path to a YAML config file

Exactly one of --dashboard, --dashboard-prefix and --dashboard-suffix must be
given.`)
}
