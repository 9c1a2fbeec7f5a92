package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/noah-isme/coursesync/internal/api"
	"github.com/noah-isme/coursesync/internal/audit"
	shell "github.com/noah-isme/coursesync/internal/cli"
	"github.com/noah-isme/coursesync/internal/config"
	"github.com/noah-isme/coursesync/internal/effects"
	"github.com/noah-isme/coursesync/internal/form"
	"github.com/noah-isme/coursesync/internal/observability"
	"github.com/noah-isme/coursesync/internal/session"
	"github.com/noah-isme/coursesync/internal/state"
	"github.com/noah-isme/coursesync/internal/store"
)

func main() {
	app := &cli.App{
		Name:  "coursesync",
		Usage: "browse the course catalog and manage your schedule",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Usage: "course API base URL (overrides COURSESYNC_API_BASE_URL)"},
			&cli.StringFlag{Name: "log-level", Usage: "zerolog level for diagnostics written to stderr"},
			&cli.BoolFlag{Name: "no-restore", Usage: "ignore any saved session"},
		},
		Action: func(c *cli.Context) error {
			return run(c, func(ctx context.Context, deps shell.Deps, logger zerolog.Logger) error {
				sh := shell.NewShell(deps, os.Stdout, logger)
				shell.Render(os.Stdout, deps.Store.State())
				return sh.Run(ctx, os.Stdin)
			})
		},
		Commands: []*cli.Command{
			{
				Name:  "courses",
				Usage: "print the catalog and exit",
				Action: func(c *cli.Context) error {
					return run(c, func(_ context.Context, deps shell.Deps, _ zerolog.Logger) error {
						shell.Render(os.Stdout, deps.Store.State())
						return nil
					})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("coursesync: %v", err)
	}
}

type runner func(ctx context.Context, deps shell.Deps, logger zerolog.Logger) error

func run(c *cli.Context, fn runner) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if url := c.String("base-url"); url != "" {
		cfg.APIBaseURL = url
	}
	level := cfg.LogLevel
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}

	logger := newLogger(os.Stderr, cfg.AppName, level)
	observability.RegisterMetrics()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := session.OpenKV(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open session storage: %w", err)
	}
	defer func() {
		if err := closeKV(); err != nil {
			logger.Warn().Err(err).Msg("failed to close session storage")
		}
	}()
	sessions := session.NewStore(kv, logger)

	client, err := api.NewClient(api.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.HTTPTimeout, Logger: logger})
	if err != nil {
		return fmt.Errorf("build api client: %w", err)
	}

	st := store.New(state.Initial(), logger)

	if cfg.AuditNATSURL != "" {
		conn, err := audit.Connect(cfg.AuditNATSURL, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("audit stream disabled")
		} else {
			defer conn.Close()
			detach := audit.NewRecorder(conn, cfg.AuditSubject, logger).Attach(st)
			defer detach()
		}
	}

	scheduler := effects.TimerScheduler{}
	deps := shell.Deps{
		Store:    st,
		Auth:     effects.NewAuthCoordinator(st, client, sessions, logger),
		Catalog:  effects.NewCatalogCoordinator(st, client, logger),
		Courses:  effects.NewCourseCoordinator(st, client, nil, scheduler, cfg.MessageClearDelay, logger),
		Schedule: effects.NewScheduleCoordinator(st, client, scheduler, cfg.MessageClearDelay, logger),
		Form:     form.NewController(st, logger),
	}

	if !c.Bool("no-restore") {
		restored, err := deps.Auth.Restore(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to restore session")
		}
		if restored {
			_ = deps.Schedule.Fetch(ctx)
		}
	}
	_ = deps.Catalog.Fetch(ctx)

	return fn(ctx, deps, logger)
}

func newLogger(w io.Writer, appName, level string) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Str("service", appName).Logger()
	if parsed, err := zerolog.ParseLevel(level); err == nil {
		return logger.Level(parsed)
	}
	return logger.Level(zerolog.WarnLevel)
}
