package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chrissnell/jyotish/pkg/chart"
	"github.com/chrissnell/jyotish/pkg/client"
	"github.com/chrissnell/jyotish/pkg/config"
	"github.com/chrissnell/jyotish/pkg/report"
	"github.com/chrissnell/jyotish/pkg/storage"
	"go.uber.org/zap"
)

// App represents one chart run: build parameters, fetch, persist, report
type App struct {
	cfg      *config.ConfigData
	logger   *zap.SugaredLogger
	out      io.Writer
	estimate bool
}

// Option configures an App
type Option func(*App)

// WithOutput sends reports to w instead of stdout
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithEstimate appends the locally computed estimate to the reports
func WithEstimate(enabled bool) Option {
	return func(a *App) { a.estimate = enabled }
}

// New creates a new application instance
func New(cfg *config.ConfigData, logger *zap.SugaredLogger, opts ...Option) *App {
	a := &App{
		cfg:    cfg,
		logger: logger,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run computes the configured chart. Parameters are built before anything touches the
// network, so bad birth data fails with a *chart.ParseError and no request. A failed
// fetch writes no file and prints no reports.
func (a *App) Run(ctx context.Context) error {
	birth := a.cfg.Birth
	params, err := chart.BuildParams(birth.Date, birth.Time, birth.Latitude, birth.Longitude, birth.Timezone)
	if err != nil {
		return err
	}

	store, err := storage.NewFileStore(a.cfg.Output)
	if err != nil {
		return err
	}

	a.logger.Infof("Requesting chart for %s %s at %s,%s (%s)",
		birth.Date, birth.Time, params.Latitude, params.Longitude, birth.Timezone)

	text, err := client.New(a.cfg.Service, a.logger).Fetch(ctx, params)
	if err != nil {
		return err
	}

	if err := store.WriteText(text); err != nil {
		return err
	}
	a.logger.Infof("Response saved to %s", store.Path())

	resp, err := chart.ParseString(text)
	if err != nil {
		return fmt.Errorf("error decoding chart response: %w", err)
	}
	if err := report.All(a.out, resp); err != nil {
		return err
	}

	if a.estimate {
		return report.Estimate(a.out, params.Time(a.location(birth.Timezone)), birth.Latitude, birth.Longitude)
	}
	return nil
}

// RenderSaved prints the reports for a response persisted by an earlier run, in the
// format the output configuration names
func (a *App) RenderSaved(path string) error {
	var text string

	switch a.cfg.Output.Format {
	case config.FormatMsgPack:
		saved, err := storage.ReadMsgPack(path)
		if err != nil {
			return err
		}
		text = saved
	default:
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		text = string(b)
	}

	for _, render := range []func(io.Writer, string) error{
		report.PlanetaryPositionsJSON,
		report.PanchangaJSON,
		report.RisingSettingJSON,
	} {
		if err := render(a.out, text); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		a.logger.Warnf("unknown timezone %q, estimating in UTC: %v", name, err)
		return time.UTC
	}
	return loc
}
