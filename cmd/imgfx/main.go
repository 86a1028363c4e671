package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"imgfx/internal/config"
	"imgfx/internal/logging"
	"imgfx/pkg/effect"
	"imgfx/pkg/fractal"
	"imgfx/pkg/imageio"
)

const prog = "imgfx"

const (
	exitOK      = 0
	exitFailed  = 1
	exitArgs    = 2
	exitUnknown = 255
)

type env struct {
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
}

func main() {
	if err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], &env{
		fs:     afero.NewOsFs(),
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
	})
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, e *env) int {
	cfg, err := config.Parse(prog, args, e.getenv, e.stderr)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		effect.Usage(e.stdout, prog)
		return exitArgs
	}

	req := effect.NewRequest(cfg.Input, cfg.Param, cfg.Output, cfg.Effect)
	fmt.Fprintln(e.stdout, req.Summary())

	var d *effect.Dispatcher
	var logger *zap.Logger

	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(
			func() afero.Fs { return e.fs },
			func(c *config.Config) *zap.Logger {
				return logging.New(logging.Options{Debug: c.Debug, File: c.LogFile, Console: e.stderr})
			},
			func(fs afero.Fs, l *zap.Logger) *imageio.Store {
				return imageio.NewStore(l, imageio.WithFs(fs),
					imageio.WithFetcher(imageio.NewFetcher(l).SetProgress(e.stderr)))
			},
			func(c *config.Config, l *zap.Logger) *fractal.Renderer {
				opts := []fractal.Option{fractal.WithWorkers(c.Workers)}
				if c.Progress {
					opts = append(opts, fractal.WithProgress(e.stderr))
				}
				return fractal.NewRenderer(l, opts...)
			},
			func(s *imageio.Store, r *fractal.Renderer, l *zap.Logger) *effect.Handlers {
				return effect.NewHandlers(s, r, e.stdout, l)
			},
			effect.NewDispatcher,
		),
		fx.Populate(&d, &logger),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintln(e.stderr, err)
		return exitFailed
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := d.Dispatch(ctx, req); err != nil {
		if errors.Is(err, effect.ErrUnknownEffect) {
			effect.Usage(e.stdout, prog)
			return exitUnknown
		}
		logger.With(zap.Error(err)).Error("effect failed")
		return exitFailed
	}

	return exitOK
}
