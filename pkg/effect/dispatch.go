package effect

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

type Handler func(ctx context.Context, req *Request) error

type Dispatcher struct {
	handlers map[Kind]Handler
	log      *zap.Logger
}

// NewDispatcher binds every Kind to its handler on h.
func NewDispatcher(h *Handlers, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: map[Kind]Handler{
			Blur:     h.Blur,
			Brighten: h.Brighten,
			Crop:     h.Crop,
			Fractal:  h.Fractal,
		},
		log: logger,
	}
}

// Dispatch runs the single handler named by req.Effect. An unknown name
// returns ErrUnknownEffect before anything is read or written.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) error {
	kind, err := ParseKind(req.Effect)
	if err != nil {
		return err
	}

	handler, ok := d.handlers[kind]
	if !ok {
		return fmt.Errorf("%w: %s has no handler", ErrUnknownEffect, kind)
	}

	d.log.With(
		zap.Stringer("effect", kind),
		zap.String("input", req.Input),
		zap.String("output", req.Output),
	).Debug("dispatch")

	if err := handler(ctx, req); err != nil {
		return fmt.Errorf("%s failed: %w", kind, err)
	}

	return nil
}

var usageLines = []struct {
	kind Kind
	args string
	help string
}{
	{Blur, "INFILE [SIGMA]", "gaussian blur, SIGMA defaults to 2.0"},
	{Brighten, "INFILE [DELTA]", "add DELTA to each channel, DELTA defaults to 100"},
	{Crop, "INFILE X,Y,WIDTH,HEIGHT", "cut out a rectangle"},
	{Fractal, "INFILE", "render an 800x800 fractal, INFILE is not read"},
}

// Usage prints the command help.
func Usage(w io.Writer, prog string) {
	_, _ = color.New(color.Bold).Fprintln(w, "USAGE (when in doubt, use a .png extension on your filenames)")
	for _, l := range usageLines {
		_, _ = fmt.Fprintf(w, "  %s %s [-o OUTFILE] -e %s\n      %s\n", prog, l.args, l.kind, l.help)
	}
	_, _ = fmt.Fprintln(w, "OUTFILE defaults to out_INFILE.")
}
