// package app is the main entrypoint into the application, responsible for
// configuring and starting the application, services, dependency injection,
// etc.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/roadmap/internal/logging"
	"github.com/leg100/roadmap/internal/roadmap"
	"github.com/leg100/roadmap/internal/tui"
	"github.com/leg100/roadmap/internal/version"
	"github.com/peterbourgon/ff/v4"
)

type app struct {
	logger *logging.Logger
	// files to be closed once the app finishes
	files []*os.File
}

// Start the app.
func Start(stdout, stderr io.Writer, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Parse configuration from env vars and flags
	cfg, err := parse(stderr, args)
	if errors.Is(err, ff.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}

	if cfg.Version {
		fmt.Fprintln(stdout, "roadmap", version.Version)
		return nil
	}

	app, m, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(
		m,
		// use the full size of the terminal with its "alternate screen buffer"
		tea.WithAltScreen(),
	)
	cleanup := app.start(ctx, p)
	defer func() {
		_ = cleanup()
	}()

	// Blocks until user quits
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// newApp constructs an instance of the app and the top-level TUI model.
func newApp(ctx context.Context, cfg config) (*app, tea.Model, error) {
	app := &app{}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		app.files = append(app.files, f)
		cfg.loggingOptions.AdditionalWriters = append(cfg.loggingOptions.AdditionalWriters, f)
	}

	// Setup logging
	app.logger = logging.NewLogger(cfg.loggingOptions)

	client, err := roadmap.NewClient(roadmap.ClientOptions{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout,
		Logger:  app.logger,
	})
	if err != nil {
		app.close()
		return nil, nil, err
	}

	// Log some info useful to the user
	app.logger.Info("loaded config",
		"version", version.Version,
		"api_url", cfg.APIURL,
		"timeout", cfg.Timeout,
		"log_level", cfg.loggingOptions.Level,
	)

	opts := tui.Options{
		Service: client,
		Logger:  app.logger,
		Context: ctx,
		Topic:   cfg.Topic,
		Email:   cfg.Email,
		Search:  cfg.Topic != "",
	}
	if cfg.Debug {
		f, err := os.OpenFile("messages.log", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			app.close()
			return nil, nil, fmt.Errorf("opening messages log: %w", err)
		}
		app.files = append(app.files, f)
		opts.Dump = f
	}
	return app, tui.New(opts), nil
}

type sender interface {
	Send(tea.Msg)
}

// start relays log events to the TUI, and returns a function to clean up
// resources once the TUI has finished.
func (a *app) start(ctx context.Context, s sender) func() error {
	logEvents := a.logger.Subscribe(ctx)
	go func() {
		for ev := range logEvents {
			s.Send(ev)
		}
	}()
	return a.close
}

func (a *app) close() error {
	var errs []error
	for _, f := range a.files {
		errs = append(errs, f.Close())
	}
	a.files = nil
	return errors.Join(errs...)
}
